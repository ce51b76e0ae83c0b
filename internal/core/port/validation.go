package port

type EmailValidator interface {
	IsValid(email string) bool
}

type EmailValidatorFunc func(email string) bool

func (f EmailValidatorFunc) IsValid(email string) bool {
	return f(email)
}

// StructValidator checks the struct tags of request payloads.
type StructValidator interface {
	ValidateStruct(s any) error
}
