package bindly

import "errors"

var (
	//ErrDuplicateField reports two members declared with the same name for one type
	ErrDuplicateField = errors.New("duplicate field name")
	//ErrNotRecord reports a registry request for a non struct type
	ErrNotRecord = errors.New("not a record type")
	//ErrAlreadyDeclared reports a second declaration for the same type
	ErrAlreadyDeclared = errors.New("members already declared")
	//ErrAlreadyBuilt reports a declaration made after the type registry was built
	ErrAlreadyBuilt = errors.New("registry already built")
	//ErrUnknownMember reports a declared name without a matching struct field
	ErrUnknownMember = errors.New("unknown member")
	//ErrOwnerMismatch reports a member bound to a different record type
	ErrOwnerMismatch = errors.New("member owner mismatch")
)
