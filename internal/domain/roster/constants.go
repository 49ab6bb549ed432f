package roster

const (
	IdentifierSIN = "SIN"

	DocTypeContract   = "Contract"
	DocTypeWorkPermit = "WorkPermit"
	DocTypeOther      = "Other"

	voidChequeNote = "Void Cheque"

	maxFileNameLength = 255
)
