package logic

import "errors"

var (
	// ErrUnknownOperator is returned for operator spellings outside > < == !=.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrUnknownStat is returned when a compared stat is absent on the subject.
	ErrUnknownStat = errors.New("unknown stat")

	// ErrNoTarget is returned when a target-subject leaf has nothing to resolve.
	ErrNoTarget = errors.New("no target")

	// ErrUnknownSubject is returned for subjects other than self and target.
	ErrUnknownSubject = errors.New("unknown subject")
)
