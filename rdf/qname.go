package rdf

// IsPrefixLabel reports whether value is usable as a CURIE prefix label:
// ASCII letters, digits, '_', '.' and '-'. The empty label is handled by
// callers as the default prefix and is rejected here.
func IsPrefixLabel(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if !isNameChar(value[i]) {
			return false
		}
	}
	return true
}

// IsBlankNodeLabel reports whether value is a plausible blank node label.
func IsBlankNodeLabel(value string) bool {
	if value == "" || value[len(value)-1] == '.' {
		return false
	}
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if ch >= 0x80 {
			continue
		}
		if !isNameChar(ch) {
			return false
		}
	}
	return true
}

func isNameStartChar(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStartChar(ch) || (ch >= '0' && ch <= '9') || ch == '-' || ch == '.'
}
