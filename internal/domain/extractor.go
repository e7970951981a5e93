package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	m "layermap.dev/pkg/layermap/internal/model"
)

var (
	contextImportPattern = regexp.MustCompile(`from\s+['"][^'"\n]*?domain/([\w-]+)`)
	classPattern         = regexp.MustCompile(`export\s+(?:default\s+)?class\s+(\w+)`)
	providerSuffixes     = []string{"Service", "Guard", "Provider", "UseCase", "Repository"}
)

// Extractor pulls module declarations out of source text.
//
// The declaration block is found with a balanced-delimiter scanner rather
// than a grammar. Brackets inside regex literals or template-literal
// interpolations can still mislead it.
type Extractor struct {
	Keyword string
	Shared  string
}

// NewExtractor returns an Extractor for `@Module({...})` blocks that ignores
// references to the shared context directory.
func NewExtractor(shared string) Extractor {
	return Extractor{Keyword: moduleKeyword, Shared: shared}
}

// ExtractDeclaration extracts the block introduced by keyword using the
// default shared directory name.
func ExtractDeclaration(text, keyword string) m.ModuleDeclaration {
	return Extractor{Keyword: keyword, Shared: DefaultLayout().Shared}.Extract(text)
}

// Extract returns the declaration found in text. The result is empty when the
// anchor is missing, the block is unbalanced, or text is not valid UTF-8.
func (e Extractor) Extract(text string) m.ModuleDeclaration {
	var decl m.ModuleDeclaration

	if !utf8.ValidString(text) {
		return decl
	}

	body, ok := e.block(text)
	if !ok {
		return decl
	}

	lists := topLevelLists(body)

	decl.Imports = extractImports(lists["imports"])
	decl.Providers = extractProviders(lists["providers"])
	decl.Controllers = filterIdents(lists["controllers"], func(id string) bool {
		return strings.HasSuffix(id, "Controller") && id != "Controller"
	})
	decl.Exports = filterIdents(lists["exports"], startsUpper)
	decl.Contexts = e.referencedContexts(text)

	if match := classPattern.FindStringSubmatch(text); match != nil {
		decl.ClassName = match[1]
	}

	return decl
}

// block returns the object body of the first `keyword ( { ... } )` in code.
func (e Extractor) block(text string) (string, bool) {
	keyword := e.Keyword
	if keyword == "" {
		keyword = moduleKeyword
	}

	for from := 0; ; {
		at := indexCode(text, keyword, from)
		if at < 0 {
			return "", false
		}

		from = at + len(keyword)

		paren := skipTrivia(text, from)
		if paren >= len(text) || text[paren] != '(' {
			continue
		}

		brace := skipTrivia(text, paren+1)
		if brace >= len(text) || text[brace] != '{' {
			continue
		}

		end, ok := matchBalanced(text, brace)
		if !ok {
			return "", false
		}

		return text[brace+1 : end], true
	}
}

func (e Extractor) referencedContexts(text string) []string {
	var contexts []string

	seen := make(map[string]struct{})

	for _, match := range contextImportPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if name == e.Shared {
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		contexts = append(contexts, name)
	}

	return contexts
}

// extractProviders emits deduplicated plain tokens followed by bound pairs.
// Identifiers inside a bound-pair object never surface as plain tokens.
func extractProviders(list string) []m.Provider {
	var (
		plain []string
		pairs []m.Provider
	)

	for _, element := range splitTopLevel(list) {
		element = element[skipTrivia(element, 0):]
		if element == "" {
			continue
		}

		if element[0] != '{' {
			for _, id := range identifiers(element) {
				if isProviderToken(id) {
					plain = append(plain, id)
				}
			}

			continue
		}

		end, ok := matchBalanced(element, 0)
		if !ok {
			continue
		}

		props := topLevelProperties(element[1:end])
		token := valueIdent(props["provide"])
		useClass := valueIdent(props["useClass"])

		switch {
		case token != "" && useClass != "":
			pairs = append(pairs, m.Provider{Token: token, UseClass: useClass})
		case isProviderToken(token):
			plain = append(plain, token)
		}
	}

	plain = dedupe(plain)

	providers := make([]m.Provider, 0, len(plain)+len(pairs))
	for _, token := range plain {
		providers = append(providers, m.Provider{Token: token})
	}

	return append(providers, pairs...)
}

// extractImports names the module each top-level element imports: the
// leading identifier of `X`, `X.forRoot(...)` or the target of
// `forwardRef(() => X)`. Call arguments and string literals never count.
func extractImports(list string) []string {
	var imports []string

	for _, element := range splitTopLevel(list) {
		if name := importName(element); name != "" && isImportToken(name) {
			imports = append(imports, name)
		}
	}

	return dedupe(imports)
}

func importName(element string) string {
	i := skipTrivia(element, 0)
	if i >= len(element) || !isIdentStart(element[i]) {
		return ""
	}

	end := scanIdent(element, i)
	if name := element[i:end]; name != "forwardRef" {
		return name
	}

	arrow := indexCode(element, "=>", end)
	if arrow < 0 {
		return ""
	}

	j := skipTrivia(element, arrow+len("=>"))
	for j < len(element) && element[j] == '(' {
		j = skipTrivia(element, j+1)
	}

	if j >= len(element) || !isIdentStart(element[j]) {
		return ""
	}

	return element[j:scanIdent(element, j)]
}

func filterIdents(list string, keep func(string) bool) []string {
	var out []string

	for _, id := range identifiers(list) {
		if keep(id) {
			out = append(out, id)
		}
	}

	return dedupe(out)
}

func isImportToken(id string) bool {
	return strings.HasSuffix(id, "Module") || startsUpper(id)
}

func isProviderToken(id string) bool {
	for _, suffix := range providerSuffixes {
		if strings.HasSuffix(id, suffix) && len(id) > len(suffix) {
			return true
		}
	}

	return false
}

func startsUpper(id string) bool {
	r, _ := utf8.DecodeRuneInString(id)
	return unicode.IsUpper(r)
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	out := values[:0]

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
