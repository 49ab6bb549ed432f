package source

// Canonical onboarding fields.
const (
	FieldDepartment      = "department"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldFullName        = "full_name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldRoleTitle       = "role_title"
	FieldHireDate        = "hire_date"
	FieldTerminationDate = "termination_date"
	FieldStatus          = "status"
	FieldBirthDate       = "birth_date"
	FieldAddress         = "address"
	FieldEmergencyName   = "emergency_name"
	FieldEmergencyPhone  = "emergency_phone"
	FieldBank            = "bank"
	FieldTransit         = "transit"
	FieldAccount         = "account"
	FieldSIN             = "sin"
	FieldSINExpiry       = "sin_expiry"
	FieldContractURL     = "contract_url"
	FieldStatusProofURL  = "status_proof_url"
	FieldVoidChequeURL   = "void_cheque_url"
)

// Canonical payroll fields.
const (
	FieldName            = "name"
	FieldRate            = "rate"
	FieldHoursBiweekly   = "hours_biweekly"
	FieldTimeReportHours = "time_report_hours"
	FieldPayrollHours    = "payroll_hours"
	FieldStatHours       = "stat_hours"
	FieldRemainingHours  = "remaining_hours"
	FieldAfterHoursBonus = "after_hours_bonus"
	FieldBonus           = "bonus"
	FieldDeduction       = "deduction"
	FieldVacationPay     = "vacation_pay"
)

// OnboardingA is the incoming-responses export. Its header row starts with a
// "Name" cell that actually holds the department label.
var OnboardingA = Schema{
	Kind:     KindOnboardingA,
	Match:    ExactLabel,
	Label:    "name",
	ScanRows: 30,
	Fields: map[string][]string{
		FieldDepartment:      {"Name"},
		FieldFirstName:       {"First Name"},
		FieldLastName:        {"Last Name"},
		FieldEmail:           {"Email Address"},
		FieldPhone:           {"Phone Number"},
		FieldRoleTitle:       {"Designation/Position"},
		FieldHireDate:        {"Date of Joining"},
		FieldTerminationDate: {"Last Day Worked"},
		FieldStatus:          {"Status"},
		FieldBirthDate:       {"Date of Birth"},
		FieldAddress:         {"Full Address With Postal Code"},
		FieldEmergencyName:   {"Emergency Contact Name"},
		FieldEmergencyPhone:  {"Emergency Contact Phone Number"},
		FieldBank:            {"Bank"},
		FieldTransit:         {"Transit Number"},
		FieldAccount:         {"Account Number"},
		FieldSIN:             {"SIN (Social Insurance Number)", "Sin number"},
		FieldSINExpiry:       {"SIN Expiry Date (Optional)"},
		FieldContractURL:     {"Signed Contract"},
		FieldStatusProofURL:  {"Status Proof- study permit/work permit/PR/citizenship"},
		FieldVoidChequeURL:   {"void cheque and direct deposit document"},
	},
}

// OnboardingB is the form-responses export with a plain first-row header and
// a single full-name column.
var OnboardingB = Schema{
	Kind:  KindOnboardingB,
	Match: FirstRow,
	Fields: map[string][]string{
		FieldFullName:       {"First Name & Last Name"},
		FieldEmail:          {"Email Address"},
		FieldPhone:          {"Phone number"},
		FieldRoleTitle:      {"Position"},
		FieldHireDate:       {"Date of Joining"},
		FieldBirthDate:      {"Date of Birth"},
		FieldAddress:        {"Full Address with Postal Code"},
		FieldEmergencyName:  {"Emergency Contact Name"},
		FieldEmergencyPhone: {"Emergency Contact Phone Number"},
		FieldSIN:            {"SIN Number"},
		FieldSINExpiry:      {"SIN Expiry (MM/DD/YYYY)"},
		FieldBank:           {"Bank"},
		FieldTransit:        {"Transit Number"},
		FieldAccount:        {"Account Number"},
	},
}

// Payroll sheets carry their numbers at fixed offsets from the name column;
// the header labels vary between periods.
var Payroll = Schema{
	Kind:     KindPayroll,
	Match:    PrefixLabel,
	Label:    "name",
	ScanRows: 100,
	Offsets: map[string]int{
		FieldName:            0,
		FieldRate:            1,
		FieldHoursBiweekly:   2,
		FieldTimeReportHours: 3,
		FieldPayrollHours:    4,
		FieldStatHours:       5,
		FieldRemainingHours:  6,
		FieldAfterHoursBonus: 7,
		FieldBonus:           8,
		FieldDeduction:       9,
		FieldVacationPay:     12,
	},
}

// ForKind returns the schema of a tabular source kind.
func ForKind(kind Kind) (Schema, bool) {
	switch kind {
	case KindOnboardingA:
		return OnboardingA, true
	case KindOnboardingB:
		return OnboardingB, true
	case KindPayroll:
		return Payroll, true
	}
	return Schema{}, false
}
