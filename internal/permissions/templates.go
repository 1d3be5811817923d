package permissions

// Template is a named permission preset
type Template struct {
	Digits [3]uint8
	Label  string
	Hint   string
}

// Octal renders the preset as "755"
func (t Template) Octal() string {
	return octal(t.Digits)
}

// Templates are listed in the order the picker shows them
var Templates = []Template{
	{[3]uint8{7, 5, 5}, "Standard (rwxr-xr-x)", "Executables and directories"},
	{[3]uint8{6, 4, 4}, "Read Only (rw-r--r--)", "Regular files"},
	{[3]uint8{6, 0, 0}, "Private (rw-------)", "Sensitive files, owner only"},
	{[3]uint8{7, 0, 0}, "Private Exec (rwx------)", "Private scripts/directories"},
	{[3]uint8{7, 7, 5}, "Group Share (rwxrwxr-x)", "Shared directories"},
	{[3]uint8{6, 6, 4}, "Group Write (rw-rw-r--)", "Collaborative files"},
	{[3]uint8{6, 6, 6}, "All Write (rw-rw-rw-)", "Temporary/log files"},
	{[3]uint8{7, 7, 7}, "Full Access (rwxrwxrwx)", "⚠️ DANGEROUS - Everyone has full access"},
	{[3]uint8{4, 0, 0}, "Read Only Owner (r--------)", "Protected configs"},
	{[3]uint8{5, 0, 0}, "Exec Only Owner (r-x------)", "Protected scripts"},
}

var securityRemarks = map[string]string{
	"777": "⚠️ VERY INSECURE - Anyone can do anything!",
	"666": "⚠️ Risky - Anyone can modify these files",
	"755": "✓ Standard - Safe for programs and directories",
	"644": "✓ Standard - Safe for regular files",
	"600": "✓ Secure - Only you have access",
	"700": "✓ Secure - Private directory/executable",
	"000": "⚠️ Locked - Nobody can access (unusual)",
}
