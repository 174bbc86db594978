package services

import (
	"context"
	"errors"
	"testing"

	"github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
	"github.com/R0ger25/api-rastreabilidade-backend/internal/repos/testutil"
	"github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

func TestIssueToken_VerifyTokenRoundTrips(t *testing.T) {
	log := testutil.Logger(t)
	identity := NewIdentityService(nil, log, nil, nil, nil, "unit-test-secret")

	token, err := identity.IssueToken("tecnico@teste.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	email, err := identity.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if email != "tecnico@teste.com" {
		t.Fatalf("got subject %q", email)
	}
}

func TestVerifyToken_RejectsWrongSecret(t *testing.T) {
	log := testutil.Logger(t)
	issuer := NewIdentityService(nil, log, nil, nil, nil, "secret-a")
	verifier := NewIdentityService(nil, log, nil, nil, nil, "secret-b")

	token, err := issuer.IssueToken("tecnico@teste.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := verifier.VerifyToken(token); err == nil {
		t.Fatalf("expected verification to fail")
	}
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
	log := testutil.Logger(t)
	identity := NewIdentityService(nil, log, nil, nil, nil, "unit-test-secret")
	if _, err := identity.VerifyToken("not-a-jwt"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHashPassword_VerifiesWithCheckPassword(t *testing.T) {
	hash, err := HashPassword("senha123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !checkPassword(hash, "senha123") {
		t.Fatalf("hash does not verify its own password")
	}
	if checkPassword(hash, "senha124") {
		t.Fatalf("hash verified a wrong password")
	}
}

func newIdentityForDB(t *testing.T) (IdentityService, *testIdentityFixture) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	technicianRepo := repos.NewTechnicianRepo(tx, log)
	sawmillRepo := repos.NewSawmillRepo(tx, log)
	factoryRepo := repos.NewFactoryRepo(tx, log)
	identity := NewIdentityService(tx, log, technicianRepo, sawmillRepo, factoryRepo, "integration-secret")
	fixture := &testIdentityFixture{
		technician: testutil.SeedTechnician(t, tx),
		sawmill:    testutil.SeedSawmill(t, tx),
		factory:    testutil.SeedFactory(t, tx),
	}
	return identity, fixture
}

type testIdentityFixture struct {
	technician *types.FieldTechnician
	sawmill    *types.SawmillTeam
	factory    *types.FactoryTeam
}

func TestAuthenticate_ResolvesRoleFromTable(t *testing.T) {
	identity, fixture := newIdentityForDB(t)
	ctx := context.Background()

	cases := []struct {
		email string
		role  types.Role
	}{
		{fixture.technician.Email, types.RoleTechnician},
		{fixture.sawmill.Email, types.RoleSawmill},
		{fixture.factory.Email, types.RoleFactory},
	}
	for _, c := range cases {
		principal, err := identity.Authenticate(ctx, c.email, testutil.SeedPassword)
		if err != nil {
			t.Fatalf("Authenticate(%q): %v", c.email, err)
		}
		if principal.Role != c.role {
			t.Fatalf("%q: got role %q want %q", c.email, principal.Role, c.role)
		}
		if principal.Email != c.email {
			t.Fatalf("%q: got email %q", c.email, principal.Email)
		}
	}
}

func TestAuthenticate_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	identity, fixture := newIdentityForDB(t)
	ctx := context.Background()

	_, errWrong := identity.Authenticate(ctx, fixture.factory.Email, "senha-errada")
	_, errUnknown := identity.Authenticate(ctx, "ninguem@teste.com", testutil.SeedPassword)

	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errWrong)
	}
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatalf("error messages differ: %q vs %q", errWrong, errUnknown)
	}
}

func TestResolveAsRole_IgnoresOtherTables(t *testing.T) {
	identity, fixture := newIdentityForDB(t)
	ctx := context.Background()

	principal, err := identity.ResolveAsRole(ctx, fixture.sawmill.Email, types.RoleSawmill)
	if err != nil {
		t.Fatalf("ResolveAsRole: %v", err)
	}
	if principal.ID != fixture.sawmill.ID {
		t.Fatalf("got id %s want %s", principal.ID, fixture.sawmill.ID)
	}

	if _, err := identity.ResolveAsRole(ctx, fixture.sawmill.Email, types.RoleFactory); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-role lookup: got %v", err)
	}
}
