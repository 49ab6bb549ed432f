package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrimport/internal/domain/normalize"
)

const EmploymentTypeFullTime = "Full-time"

var ErrEmptyCandidate = errors.New("candidate has neither email nor name")

// Candidate is the identifying evidence a source record carries.
type Candidate struct {
	Email     string
	FirstName string
	LastName  string
}

func (c Candidate) hasName() bool {
	return strings.TrimSpace(c.FirstName) != "" || strings.TrimSpace(c.LastName) != ""
}

// Matcher finds an existing employee for a candidate. A miss is ok=false
// with a nil error.
type Matcher interface {
	Match(ctx context.Context, c Candidate) (string, bool, error)
}

type MatcherFunc func(ctx context.Context, c Candidate) (string, bool, error)

func (f MatcherFunc) Match(ctx context.Context, c Candidate) (string, bool, error) {
	return f(ctx, c)
}

type EmailLookup interface {
	FindEmployeeByEmail(ctx context.Context, email string) (string, bool, error)
}

type NameLookup interface {
	FindEmployeeByName(ctx context.Context, first, last string) (string, bool, error)
}

// Stub is the minimal employee created when a source references someone
// the roster does not know yet.
type Stub struct {
	FirstName      string
	LastName       string
	Email          string
	HireDate       time.Time
	EmploymentType string
	Status         normalize.Status
}

type StubCreator interface {
	CreateStubEmployee(ctx context.Context, stub Stub) (string, error)
}

type EmailMatcher struct {
	Lookup EmailLookup
}

func (m EmailMatcher) Match(ctx context.Context, c Candidate) (string, bool, error) {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return "", false, nil
	}
	return m.Lookup.FindEmployeeByEmail(ctx, strings.ToLower(email))
}

type NameMatcher struct {
	Lookup NameLookup
}

func (m NameMatcher) Match(ctx context.Context, c Candidate) (string, bool, error) {
	if !c.hasName() {
		return "", false, nil
	}
	first := strings.ToLower(strings.TrimSpace(c.FirstName))
	last := strings.ToLower(strings.TrimSpace(c.LastName))
	return m.Lookup.FindEmployeeByName(ctx, first, last)
}

type Resolver struct {
	matchers []Matcher
	stubs    StubCreator
	now      func() time.Time
}

func NewResolver(stubs StubCreator, matchers ...Matcher) *Resolver {
	return &Resolver{matchers: matchers, stubs: stubs, now: time.Now}
}

// WithClock replaces the clock used for stub hire dates.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve runs the matchers in order and returns the first hit.
func (r *Resolver) Resolve(ctx context.Context, c Candidate) (string, bool, error) {
	for _, m := range r.matchers {
		id, ok, err := m.Match(ctx, c)
		if err != nil {
			return "", false, err
		}
		if ok {
			return id, true, nil
		}
	}
	return "", false, nil
}

// ResolveOrStub resolves the candidate and creates a stub employee on a miss.
// The boolean reports whether a stub was created.
func (r *Resolver) ResolveOrStub(ctx context.Context, c Candidate) (string, bool, error) {
	id, ok, err := r.Resolve(ctx, c)
	if err != nil {
		return "", false, fmt.Errorf("resolve employee: %w", err)
	}
	if ok {
		return id, false, nil
	}
	if !c.hasName() {
		return "", false, ErrEmptyCandidate
	}
	first := strings.TrimSpace(c.FirstName)
	last := strings.TrimSpace(c.LastName)
	email := strings.TrimSpace(c.Email)
	if email == "" {
		email = normalize.PlaceholderEmail(first, last)
	}
	now := r.now().UTC()
	id, err = r.stubs.CreateStubEmployee(ctx, Stub{
		FirstName:      first,
		LastName:       last,
		Email:          email,
		HireDate:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		EmploymentType: EmploymentTypeFullTime,
		Status:         normalize.StatusActive,
	})
	if err != nil {
		return "", false, fmt.Errorf("create stub employee: %w", err)
	}
	return id, true, nil
}
