package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "layermap.dev/pkg/layermap/internal/model"
)

const usersModuleSource = `import { Module } from "@nestjs/common";
import { APP_GUARD } from "@nestjs/core";
import { IdentityModule } from "../@shared/modules/identity.module";
import { StorageSharedModule } from "../@shared/modules/storage.module";
import { AuthGuard } from "../auth/guards/auth.guard";
import { UsersController } from "./controllers/users.controller";
import { UsersService } from "./services/users.service";
import { User } from "@/domain/identity/enterprise/entities/user.entity";

@Module({
    imports: [IdentityModule, StorageSharedModule],
    controllers: [UsersController],
    providers: [
        UsersService,
        {
            provide: APP_GUARD,
            useClass: AuthGuard,
        },
    ],
})
export class UsersModule {}
`

const storageSharedModuleSource = `import { Module } from "@nestjs/common";
import { PrismaFilesRepository } from "@/infra/database/repositories/prisma/prisma-files.repository";
import { FilesRepository } from "@/domain/storage/application/repositories/files.repository";
import { Either } from "@/domain/@shared/either";

@Module({
    imports: [PrismaModule],
    providers: [
        // Repositories
        {
            provide: "FilesRepository",
            useClass: PrismaFilesRepository,
        },
        {
            provide: "StorageProvider",
            inject: [ConfigService],
            useFactory: (configService: ConfigService) => {
                const bucketName = configService.get<string>("GCP_BUCKET_NAME");
                if (!bucketName) {
                    throw new Error("GCP_BUCKET_NAME environment variable is required");
                }
                return new GcpStorageProvider(bucketName, keyFilePath);
            },
        },
        {
            provide: "DeleteFileUseCase",
            inject: ["FilesRepository", "StorageProvider"],
            useFactory: (filesRepository: FilesRepository) => new DeleteFileUseCase(filesRepository),
        },
    ],
    exports: [
        // Note: FilesRepository is intentionally NOT exported
        "StorageProvider",
        "DeleteFileUseCase",
    ],
})
export class StorageSharedModule {}
`

func TestExtractDeclaration_Imports(t *testing.T) {
	decl := ExtractDeclaration(`@Module({ imports: [FooModule, BarModule] })`, moduleKeyword)

	assert.Equal(t, []string{"FooModule", "BarModule"}, decl.Imports)
	assert.Empty(t, decl.Providers)
	assert.Empty(t, decl.Controllers)
	assert.Empty(t, decl.Exports)
}

func TestExtractDeclaration_BoundPair(t *testing.T) {
	decl := ExtractDeclaration(`@Module({ providers: [{ provide: TOKEN, useClass: ConcreteImpl }] })`, moduleKeyword)

	require.Len(t, decl.Providers, 1)
	assert.Equal(t, m.Provider{Token: "TOKEN", UseClass: "ConcreteImpl"}, decl.Providers[0])
	assert.True(t, decl.Providers[0].IsBinding())
	assert.Equal(t, "TOKEN → ConcreteImpl", decl.Providers[0].String())
}

func TestExtractDeclaration_BoundPairDoesNotLeakPlainTokens(t *testing.T) {
	decl := ExtractDeclaration(`@Module({
  providers: [
    { provide: UsersRepository, useClass: PrismaUsersRepository },
    UsersService,
  ],
})`, moduleKeyword)

	assert.Equal(t, []m.Provider{
		{Token: "UsersService"},
		{Token: "UsersRepository", UseClass: "PrismaUsersRepository"},
	}, decl.Providers)
}

func TestExtractDeclaration_UsersModule(t *testing.T) {
	decl := ExtractDeclaration(usersModuleSource, moduleKeyword)

	assert.Equal(t, []string{"IdentityModule", "StorageSharedModule"}, decl.Imports)
	assert.Equal(t, []string{"UsersController"}, decl.Controllers)
	assert.Equal(t, []m.Provider{
		{Token: "UsersService"},
		{Token: "APP_GUARD", UseClass: "AuthGuard"},
	}, decl.Providers)
	assert.Equal(t, []string{"identity"}, decl.Contexts)
	assert.Equal(t, "UsersModule", decl.ClassName)
}

func TestExtractDeclaration_StorageSharedModule(t *testing.T) {
	decl := ExtractDeclaration(storageSharedModuleSource, moduleKeyword)

	assert.Equal(t, []string{"PrismaModule"}, decl.Imports)
	assert.Equal(t, []m.Provider{
		{Token: "StorageProvider"},
		{Token: "DeleteFileUseCase"},
		{Token: "FilesRepository", UseClass: "PrismaFilesRepository"},
	}, decl.Providers)
	assert.Equal(t, []string{"StorageProvider", "DeleteFileUseCase"}, decl.Exports, "comment text is not tokenized")
	assert.Equal(t, []string{"storage"}, decl.Contexts, "shared context is ignored")
	assert.Equal(t, "StorageSharedModule", decl.ClassName)
}

func TestExtractDeclaration_NestedBrackets(t *testing.T) {
	decl := ExtractDeclaration(`@Module({
  imports: [
    ConfigModule.forRoot({ validate: (env) => validateEnv(env), isGlobal: true }),
    TypeOrmModule.forFeature([User, Profile]),
    forwardRef(() => AuthModule),
  ],
  controllers: [HealthController],
  exports: [ConfigModule],
})
export class AppModule {}`, moduleKeyword)

	assert.Equal(t, []string{"ConfigModule", "TypeOrmModule", "AuthModule"}, decl.Imports)
	assert.Equal(t, []string{"HealthController"}, decl.Controllers, "lists after a nested list are still found")
	assert.Equal(t, []string{"ConfigModule"}, decl.Exports)
}

func TestExtractDeclaration_OnlyTopLevelKeys(t *testing.T) {
	decl := ExtractDeclaration(`@Module({
  imports: [JwtModule.register({ imports: [SecretsModule] })],
})`, moduleKeyword)

	assert.Equal(t, []string{"JwtModule"}, decl.Imports)
}

func TestExtractDeclaration_ImportsIgnoreCallArguments(t *testing.T) {
	decl := ExtractDeclaration(`@Module({
    imports: [
        IdentityModule,
        JwtModule.registerAsync({
            global: true,
            inject: [ConfigService],
            useFactory: (configService: ConfigService<Env, true>) => {
                const privateKey = configService.get("JWT_PRIVATE_KEY", { infer: true });

                return {
                    signOptions: { expiresIn: "1d", algorithm: "RS256" },
                    privateKey: Buffer.from(privateKey, "base64"),
                };
            },
        }),
        "LegacyModule",
        ...sharedImports,
        forwardRef(() => (UsersModule)),
    ],
    controllers: [AuthController],
})
export class AuthModule {}`, moduleKeyword)

	assert.Equal(t, []string{"IdentityModule", "JwtModule", "UsersModule"}, decl.Imports)
	assert.Equal(t, []string{"AuthController"}, decl.Controllers)
}

func TestImportName(t *testing.T) {
	tests := map[string]string{
		"AppModule":                            "AppModule",
		" /* shared */ CacheModule.register()": "CacheModule",
		"forwardRef(() => AuthModule)":         "AuthModule",
		"forwardRef(AuthModule)":               "",
		"'QuotedModule'":                       "",
		"...rest":                              "",
	}

	for element, want := range tests {
		assert.Equal(t, want, importName(element), element)
	}
}

func TestExtractDeclaration_BracketsInStrings(t *testing.T) {
	decl := ExtractDeclaration(`@Module({
  imports: [LoggerModule.forRoot({ pattern: "[%level] }" })],
  controllers: [PingController],
})`, moduleKeyword)

	assert.Equal(t, []string{"LoggerModule"}, decl.Imports)
	assert.Equal(t, []string{"PingController"}, decl.Controllers)
}

func TestExtractDeclaration_DuplicatesKeepFirst(t *testing.T) {
	decl := ExtractDeclaration(`@Module({ imports: [AModule, BModule, AModule], providers: [XService, XService] })`, moduleKeyword)

	assert.Equal(t, []string{"AModule", "BModule"}, decl.Imports)
	assert.Equal(t, []m.Provider{{Token: "XService"}}, decl.Providers)
}

func TestExtractDeclaration_EmptyResults(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no anchor", `export class Plain {} import { X } from "@/domain/identity/x";`},
		{"anchor in comment", `// @Module({ imports: [AModule] })`},
		{"anchor in string", `const s = "@Module({ imports: [AModule] })";`},
		{"unbalanced block", `@Module({ imports: [AModule] `},
		{"anchor without object", `@Module(config)`},
		{"invalid utf-8", "@Module({ imports: [AModule] }) \xff\xfe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := ExtractDeclaration(tt.text, moduleKeyword)
			assert.True(t, decl.IsEmpty(), "got %+v", decl)
		})
	}
}

func TestExtractDeclaration_SkipsEarlierNonMatchingAnchor(t *testing.T) {
	decl := ExtractDeclaration(`const meta = @Module;
@Module({ imports: [RealModule] })`, moduleKeyword)

	assert.Equal(t, []string{"RealModule"}, decl.Imports)
}

func TestExtractor_ReferencedContexts(t *testing.T) {
	extractor := NewExtractor("@shared")

	decl := extractor.Extract(`import { A } from "@/domain/identity/a";
import { B } from '../../domain/storage/b';
import { C } from "@/domain/identity/c";
import { D } from "@/domain/user-management/d";
import { E } from "@/domain/@shared/e";
@Module({})
export class XModule {}`)

	assert.Equal(t, []string{"identity", "storage", "user-management"}, decl.Contexts)
}

func TestScanner_MatchBalanced(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantOK bool
		want   int
	}{
		{"flat", "[a, b]", true, 5},
		{"nested", "{a: [b, (c)]}", true, 12},
		{"string with closer", `["]"]`, true, 4},
		{"comment with closer", "[a // ]\n]", true, 8},
		{"mismatched", "[a)", false, 0},
		{"unterminated", "{a: [b]", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchBalanced(tt.text, 0)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanner_SplitTopLevel(t *testing.T) {
	got := splitTopLevel(` A, { provide: B, useClass: C }, fn(D, E), "x,y", `)
	assert.Equal(t, []string{"A", "{ provide: B, useClass: C }", "fn(D, E)", `"x,y"`}, got)
}
