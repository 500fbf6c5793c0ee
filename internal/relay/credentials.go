package relay

// Credentials decides how ssh and scp invocations authenticate against the
// edge PC. Wrap receives the full argv and returns the argv to actually run.
type Credentials interface {
	Wrap(argv []string) []string
}

// PasswordCredentials authenticates by prefixing each invocation with
// sshpass, feeding the stored password on the command's behalf.
type PasswordCredentials struct {
	Password string
}

func (c PasswordCredentials) Wrap(argv []string) []string {
	return append([]string{"sshpass", "-p", c.Password}, argv...)
}

// KeyCredentials authenticates with an SSH identity file. BatchMode keeps
// a bad key from degrading into an interactive password prompt mid-run.
type KeyCredentials struct {
	IdentityFile string
}

func (c KeyCredentials) Wrap(argv []string) []string {
	out := make([]string, 0, len(argv)+4)
	out = append(out, argv[0], "-i", c.IdentityFile, "-o", "BatchMode=yes")
	return append(out, argv[1:]...)
}
