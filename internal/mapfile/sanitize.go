package mapfile

// Sanitize maps an arbitrary map name to a filesystem-safe token. Every
// rune outside [A-Za-z0-9_.-] becomes an underscore; the result always has
// the same rune count as the input. Map names come from the robot and may
// contain anything an operator typed on the tablet UI.
func Sanitize(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '-':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
