package match

import "errors"

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrNotMatchParty      = errors.New("not a party to this match")
	ErrMatchNotActive     = errors.New("match is not active")
	ErrMatchAlreadyExists = errors.New("a match already exists for this source")
	ErrAttachmentTooLarge = errors.New("attachment exceeds the size limit")
	ErrAttachmentType     = errors.New("attachment type is not allowed")
)
