package main

import "strings"

// legacyFlags maps the historical single-dash spellings onto long flags.
var legacyFlags = map[string]string{
	"-ie":   "--ignore-ext",
	"-if":   "--ignore-folders",
	"-iw":   "--ignore-whitespace",
	"-help": "--help",
}

// normalizeArgs rewrites legacy flags so the parser sees long options.
// Values are left alone, and nothing after "--" is touched.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	takesValue := false
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if takesValue {
			out = append(out, a)
			takesValue = false
			continue
		}
		name, value, hasValue := strings.Cut(a, "=")
		long, ok := legacyFlags[name]
		switch {
		case !ok:
			out = append(out, a)
		case hasValue:
			out = append(out, long+"="+value)
		default:
			out = append(out, long)
		}
		takesValue = !hasValue && expectsValue(name)
	}
	return out
}

func expectsValue(flag string) bool {
	switch flag {
	case "-p", "--path", "-ie", "-if", "--ignore-ext", "--ignore-folders", "--ignore-glob", "--history-file", "-o", "--output":
		return true
	}
	return false
}
