package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "layermap.dev/pkg/layermap/internal/model"
)

func contractRecord(name string, kind m.ArtifactKind) m.FileRecord {
	return m.FileRecord{Name: name, Path: m.Path("src/" + name), BaseName: contractNormalizer.Normalize(name), Kind: kind}
}

func sourceRecord(name string, kind m.ArtifactKind) m.FileRecord {
	return m.FileRecord{Name: name, BaseName: sourceNormalizer.Normalize(name), Kind: kind, Role: RoleOf(name)}
}

func unitTestRecord(name string) m.FileRecord {
	return m.FileRecord{Name: name, BaseName: unitTestNormalizer.Normalize(name), Kind: m.KindUnitTest, Role: RoleOf(name)}
}

func TestMatchContracts(t *testing.T) {
	prefixes := DefaultImplementationPrefixes

	t.Run("technology prefix is stripped", func(t *testing.T) {
		mappings := MatchContracts(
			[]m.FileRecord{contractRecord("users.repository.ts", m.KindContract)},
			[]m.FileRecord{contractRecord("prisma-users.repository.ts", m.KindImplementation)},
			prefixes,
		)

		require.Len(t, mappings, 1)
		assert.True(t, mappings[0].Found())
		assert.Equal(t, "prisma-users.repository.ts", mappings[0].Implementation.Name)
		assert.Equal(t, m.ConfidenceInferred, mappings[0].Confidence)
	})

	t.Run("missing implementation", func(t *testing.T) {
		mappings := MatchContracts(
			[]m.FileRecord{contractRecord("hasher.provider.ts", m.KindContract)},
			[]m.FileRecord{contractRecord("prisma-users.repository.ts", m.KindImplementation)},
			prefixes,
		)

		require.Len(t, mappings, 1)
		assert.False(t, mappings[0].Found())
		assert.Nil(t, mappings[0].Implementation)
		assert.Equal(t, m.ConfidenceNone, mappings[0].Confidence)
	})

	t.Run("exact beats an earlier prefixed candidate", func(t *testing.T) {
		mappings := MatchContracts(
			[]m.FileRecord{contractRecord("users.repository.ts", m.KindContract)},
			[]m.FileRecord{
				contractRecord("memory-users.repository.ts", m.KindImplementation),
				contractRecord("users.repository.ts", m.KindImplementation),
			},
			prefixes,
		)

		assert.Equal(t, "users.repository.ts", mappings[0].Implementation.Name)
		assert.Equal(t, m.ConfidenceExact, mappings[0].Confidence)
	})

	t.Run("prefixed equality beats an earlier containment", func(t *testing.T) {
		mappings := MatchContracts(
			[]m.FileRecord{contractRecord("users.repository.ts", m.KindContract)},
			[]m.FileRecord{
				contractRecord("users-cache.repository.ts", m.KindImplementation),
				contractRecord("redis-users.repository.ts", m.KindImplementation),
			},
			prefixes,
		)

		assert.Equal(t, "redis-users.repository.ts", mappings[0].Implementation.Name)
		assert.Equal(t, m.ConfidenceInferred, mappings[0].Confidence)
	})

	t.Run("same contract type wins a tie", func(t *testing.T) {
		mappings := MatchContracts(
			[]m.FileRecord{contractRecord("storage.provider.ts", m.KindContract)},
			[]m.FileRecord{
				contractRecord("prisma-storage.repository.ts", m.KindImplementation),
				contractRecord("memory-storage.provider.ts", m.KindImplementation),
			},
			prefixes,
		)

		assert.Equal(t, "memory-storage.provider.ts", mappings[0].Implementation.Name)
	})

	t.Run("ties keep walk order", func(t *testing.T) {
		mappings := MatchContracts(
			[]m.FileRecord{contractRecord("users.repository.ts", m.KindContract)},
			[]m.FileRecord{
				contractRecord("prisma-users.repository.ts", m.KindImplementation),
				contractRecord("memory-users.repository.ts", m.KindImplementation),
			},
			prefixes,
		)

		assert.Equal(t, "prisma-users.repository.ts", mappings[0].Implementation.Name)
	})

	t.Run("one mapping per contract in order", func(t *testing.T) {
		contracts := []m.FileRecord{
			contractRecord("users.repository.ts", m.KindContract),
			contractRecord("files.repository.ts", m.KindContract),
		}

		mappings := MatchContracts(contracts, nil, prefixes)

		require.Len(t, mappings, 2)
		assert.Equal(t, contracts[0], mappings[0].Contract)
		assert.Equal(t, contracts[1], mappings[1].Contract)
	})
}

func TestMatchTests(t *testing.T) {
	t.Run("equal base and role is exact", func(t *testing.T) {
		results := MatchTests(
			[]m.FileRecord{sourceRecord("create-user.use-case.ts", m.KindUseCase)},
			[]m.FileRecord{unitTestRecord("create-user.use-case.spec.ts")},
		)

		require.Len(t, results, 1)
		assert.True(t, results[0].Covered())
		assert.Equal(t, m.ConfidenceExact, results[0].Confidence)
	})

	t.Run("untagged test is inferred", func(t *testing.T) {
		results := MatchTests(
			[]m.FileRecord{sourceRecord("create-user.use-case.ts", m.KindUseCase)},
			[]m.FileRecord{unitTestRecord("create-user.spec.ts")},
		)

		assert.Equal(t, "create-user.spec.ts", results[0].Test.Name)
		assert.Equal(t, m.ConfidenceInferred, results[0].Confidence)
	})

	t.Run("conflicting roles never match", func(t *testing.T) {
		results := MatchTests(
			[]m.FileRecord{sourceRecord("auth.service.ts", m.KindService)},
			[]m.FileRecord{unitTestRecord("auth.use-case.spec.ts")},
		)

		assert.False(t, results[0].Covered())
		assert.Nil(t, results[0].Test)
		assert.Equal(t, m.ConfidenceNone, results[0].Confidence)
	})

	t.Run("exact beats an earlier inferred candidate", func(t *testing.T) {
		results := MatchTests(
			[]m.FileRecord{sourceRecord("auth.service.ts", m.KindService)},
			[]m.FileRecord{
				unitTestRecord("auth.spec.ts"),
				unitTestRecord("auth.service.spec.ts"),
			},
		)

		assert.Equal(t, "auth.service.spec.ts", results[0].Test.Name)
		assert.Equal(t, m.ConfidenceExact, results[0].Confidence)
	})

	t.Run("different base names never match", func(t *testing.T) {
		results := MatchTests(
			[]m.FileRecord{sourceRecord("authenticate.use-case.ts", m.KindUseCase)},
			[]m.FileRecord{unitTestRecord("auth.use-case.spec.ts")},
		)

		assert.False(t, results[0].Covered())
	})
}

func TestMapContexts(t *testing.T) {
	entities := map[string][]string{
		"identity": {"user", "session"},
		"storage":  {"file"},
	}
	services := map[string][]string{
		"uploads": {`import { UploadFileUseCase } from "@/domain/storage/application/use-cases/upload-file.use-case";`},
	}

	mappings := MapContexts(
		[]string{"identity", "storage", "billing"},
		[]string{"identity", "users", "uploads", "health"},
		func(context string) []string { return entities[context] },
		func(module string) []string { return services[module] },
	)

	require.Len(t, mappings, 3)

	assert.Equal(t, "identity", mappings[0].Context)
	assert.Equal(t, []string{"user", "session"}, mappings[0].Entities)
	assert.Equal(t, []m.ModuleMatch{
		{Module: "identity", Confidence: m.ConfidenceExact},
		{Module: "users", Confidence: m.ConfidenceInferred},
	}, mappings[0].Modules)

	assert.Equal(t, []m.ModuleMatch{
		{Module: "uploads", Confidence: m.ConfidenceImport},
	}, mappings[1].Modules)

	assert.Equal(t, "billing", mappings[2].Context)
	assert.Empty(t, mappings[2].Modules)
}

func TestMapContexts_FirstRuleWins(t *testing.T) {
	mappings := MapContexts(
		[]string{"users"},
		[]string{"users"},
		func(string) []string { return []string{"user"} },
		func(string) []string { return []string{"domain/users"} },
	)

	require.Len(t, mappings[0].Modules, 1)
	assert.Equal(t, m.ConfidenceExact, mappings[0].Modules[0].Confidence)
}
