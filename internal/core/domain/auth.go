package domain

type AccessToken string

func (t AccessToken) String() string {
	return string(t)
}

type Credentials struct {
	Email    string
	Password string
}

// AuthOutcome is either a granted token or a denial. A denial carries no
// reason so callers cannot tell an unknown email from a wrong password.
type AuthOutcome struct {
	token   AccessToken
	granted bool
}

func Granted(token AccessToken) AuthOutcome {
	return AuthOutcome{token: token, granted: true}
}

func Denied() AuthOutcome {
	return AuthOutcome{}
}

func (o AuthOutcome) Token() (AccessToken, bool) {
	return o.token, o.granted
}

func (o AuthOutcome) IsDenied() bool {
	return !o.granted
}
