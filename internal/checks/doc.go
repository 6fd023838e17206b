// Package checks summarizes rule-check (governance/lint) results.
//
// Results below a configured minimum [Severity] are ignored. Failing results
// that a policy exempted are counted apart from outright failures.
package checks
