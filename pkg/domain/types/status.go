package types

import "github.com/m-mizutani/goerr/v2"

// ComplianceStatus is the pass/fail outcome of one compliance observation
type ComplianceStatus string

const (
	StatusPass ComplianceStatus = "Pass"
	StatusFail ComplianceStatus = "Fail"
)

// IsValid checks if the status is one of the two enum values
func (s ComplianceStatus) IsValid() bool {
	return s == StatusPass || s == StatusFail
}

// String returns the string representation
func (s ComplianceStatus) String() string {
	return string(s)
}

// ParseComplianceStatus parses a string into a ComplianceStatus
func ParseComplianceStatus(v string) (ComplianceStatus, error) {
	s := ComplianceStatus(v)
	if !s.IsValid() {
		return "", goerr.New("unknown compliance status", goerr.V("status", v))
	}
	return s, nil
}
