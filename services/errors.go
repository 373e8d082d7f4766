package services

import "errors"

var (
	ErrNoCommonYears  = errors.New("provided files have no common years")
	ErrNoYearsInRange = errors.New("provided files have no data for chosen years")
)
