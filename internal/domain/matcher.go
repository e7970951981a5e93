package domain

import (
	"strings"

	m "layermap.dev/pkg/layermap/internal/model"
)

// contract match strengths, strongest last
const (
	contractNoMatch = iota
	contractContains
	contractPrefixed
	contractExact
)

// MatchContracts pairs each contract with its best implementation. Each
// contract is compared against every implementation; the strongest rule wins
// and, among equally strong candidates, one of the same contract type beats
// one of a different type. Remaining ties keep walk order.
func MatchContracts(contracts, implementations []m.FileRecord, prefixes []string) []m.ContractMapping {
	mappings := make([]m.ContractMapping, 0, len(contracts))

	for _, contract := range contracts {
		mapping := m.ContractMapping{Contract: contract}
		wantType := contractType(contract.Name)

		best, bestStrength, bestSameType := -1, contractNoMatch, false

		for i, impl := range implementations {
			strength := contractStrength(contract.BaseName, impl.BaseName, prefixes)
			if strength == contractNoMatch {
				continue
			}

			sameType := contractType(impl.Name) == wantType
			if strength > bestStrength || (strength == bestStrength && sameType && !bestSameType) {
				best, bestStrength, bestSameType = i, strength, sameType
			}
		}

		if best >= 0 {
			impl := implementations[best]
			mapping.Implementation = &impl
			mapping.Confidence = contractConfidence(bestStrength)
		}

		mappings = append(mappings, mapping)
	}

	return mappings
}

func contractStrength(contractBase, implBase string, prefixes []string) int {
	if contractBase == "" || implBase == "" {
		return contractNoMatch
	}

	if contractBase == implBase {
		return contractExact
	}

	stripped := stripPrefix(implBase, prefixes)
	if stripped == contractBase {
		return contractPrefixed
	}

	if containsEither(contractBase, implBase) || (stripped != "" && containsEither(contractBase, stripped)) {
		return contractContains
	}

	return contractNoMatch
}

func contractConfidence(strength int) m.Confidence {
	switch strength {
	case contractExact:
		return m.ConfidenceExact
	case contractPrefixed, contractContains:
		return m.ConfidenceInferred
	default:
		return m.ConfidenceNone
	}
}

// stripPrefix removes the first matching technology prefix from name.
func stripPrefix(name string, prefixes []string) string {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return name[len(prefix):]
		}
	}

	return name
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchTests finds a test for each source file. A candidate whose role tag
// conflicts with the source's is never considered. Equal base names with
// equal roles are exact; equal base names where only one side is tagged are
// inferred.
func MatchTests(sources, tests []m.FileRecord) []m.CoverageResult {
	results := make([]m.CoverageResult, 0, len(sources))

	for _, source := range sources {
		result := m.CoverageResult{Source: source}

		for _, test := range tests {
			confidence := testConfidence(source, test)
			if confidence <= result.Confidence {
				continue
			}

			matched := test
			result.Test = &matched
			result.Confidence = confidence

			if confidence == m.ConfidenceExact {
				break
			}
		}

		results = append(results, result)
	}

	return results
}

func testConfidence(source, test m.FileRecord) m.Confidence {
	if source.BaseName != test.BaseName {
		return m.ConfidenceNone
	}

	switch {
	case source.Role == test.Role:
		return m.ConfidenceExact
	case source.Role == m.RoleNone || test.Role == m.RoleNone:
		return m.ConfidenceInferred
	default:
		return m.ConfidenceNone
	}
}

// MapContexts credits HTTP modules to bounded contexts. For each context and
// module the first satisfied rule wins: equal names are exact, an entity name
// overlapping the module name is inferred, and a service file referencing
// `domain/<context>` is an import match. Modules matching no rule are left
// out of the context's list.
func MapContexts(
	contexts, modules []string,
	entities func(context string) []string,
	serviceTexts func(module string) []string,
) []m.ContextMapping {
	mappings := make([]m.ContextMapping, 0, len(contexts))

	for _, context := range contexts {
		mapping := m.ContextMapping{Context: context, Entities: entities(context)}

		for _, module := range modules {
			confidence := contextConfidence(context, module, mapping.Entities, serviceTexts)
			if confidence == m.ConfidenceNone {
				continue
			}

			mapping.Modules = append(mapping.Modules, m.ModuleMatch{Module: module, Confidence: confidence})
		}

		mappings = append(mappings, mapping)
	}

	return mappings
}

func contextConfidence(context, module string, entities []string, serviceTexts func(string) []string) m.Confidence {
	if module == context {
		return m.ConfidenceExact
	}

	for _, entity := range entities {
		if entity != "" && containsEither(entity, module) {
			return m.ConfidenceInferred
		}
	}

	reference := "domain/" + context
	for _, text := range serviceTexts(module) {
		if strings.Contains(text, reference) {
			return m.ConfidenceImport
		}
	}

	return m.ConfidenceNone
}
