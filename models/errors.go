package models

import "errors"

var (
	ErrInvalidCountryName = errors.New("invalid country name")
	ErrInvalidCountryCode = errors.New("invalid country code")
	ErrInvalidPopulation  = errors.New("invalid population")
	ErrInvalidFlagURL     = errors.New("invalid flag image URL")

	ErrInvalidDirection = errors.New("invalid page direction")
	ErrQueryTooLong     = errors.New("search query is too long")

	ErrCollectionLoading = errors.New("countries are still loading")
	ErrMalformedPayload  = errors.New("malformed countries payload")
	ErrSourceUnavailable = errors.New("countries source unavailable")

	ErrInvalidSessionKey = errors.New("invalid session key")
	ErrInvalidPageSize   = errors.New("invalid page size")
	ErrInvalidSourceURL  = errors.New("invalid countries source URL")
	ErrInvalidTimeout    = errors.New("invalid timeout")
	ErrInvalidQueryLimit = errors.New("invalid query length limit")
	ErrInvalidBodyLimit  = errors.New("invalid response body limit")
	ErrInvalidSessionTTL = errors.New("invalid session TTL")
	ErrInvalidLocale     = errors.New("invalid locale")

	ErrRecordNotFound = errors.New("record not found")
)
