package auth

// Identity is the authenticated caller behind a credential.
type Identity struct {
	UserID string
}

// Verifier maps a presented credential to an Identity.
type Verifier interface {
	Verify(token string) (Identity, error)
}

type VerifierFunc func(token string) (Identity, error)

func (f VerifierFunc) Verify(token string) (Identity, error) { return f(token) }
