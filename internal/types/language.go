package types

import "strings"

// LanguageJavaScript is the only language the sandbox executes end-to-end.
const LanguageJavaScript = "javascript"

// languageAliases maps caller-supplied language names onto canonical ones.
var languageAliases = map[string]string{
	"javascript": LanguageJavaScript,
	"js":         LanguageJavaScript,
	"node":       LanguageJavaScript,
	"nodejs":     LanguageJavaScript,
}

// NormalizeLanguage resolves a caller-supplied language name to its
// canonical form. The second return is false for unsupported languages.
func NormalizeLanguage(name string) (string, bool) {
	canonical, ok := languageAliases[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}
