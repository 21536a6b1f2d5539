package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payrecon/domain/recon"
	"payrecon/internal/normalize"
)

var invoiceSynonyms = recon.RoleSynonyms{
	recon.RoleKey:    {"CPF"},
	recon.RoleName:   {"TITULAR", "BENEFICIARIO", "NOME", "NOME TITULAR"},
	recon.RoleAmount: {"PARTE DO SEGURADO", "VALOR", "VALOR SEGURADO"},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		labels      []string
		want        recon.Resolution
		wantMissing []recon.Role
	}{
		{
			name:   "all roles present",
			labels: []string{"CPF", "TITULAR", "PARTE DO SEGURADO"},
			want: recon.Resolution{
				recon.RoleKey:    {Index: 0, Label: "CPF"},
				recon.RoleName:   {Index: 1, Label: "TITULAR"},
				recon.RoleAmount: {Index: 2, Label: "PARTE DO SEGURADO"},
			},
		},
		{
			name:   "earlier variant wins over earlier column",
			labels: []string{"CPF", "NOME", "VALOR", "TITULAR", "PARTE DO SEGURADO"},
			want: recon.Resolution{
				recon.RoleKey:    {Index: 0, Label: "CPF"},
				recon.RoleName:   {Index: 3, Label: "TITULAR"},
				recon.RoleAmount: {Index: 4, Label: "PARTE DO SEGURADO"},
			},
		},
		{
			name:   "duplicate labels pick leftmost column",
			labels: []string{"", "CPF", "VALOR", "NOME", "VALOR"},
			want: recon.Resolution{
				recon.RoleKey:    {Index: 1, Label: "CPF"},
				recon.RoleName:   {Index: 3, Label: "NOME"},
				recon.RoleAmount: {Index: 2, Label: "VALOR"},
			},
		},
		{
			name:   "amount column missing",
			labels: []string{"CPF", "TITULAR", "PLANO"},
			want: recon.Resolution{
				recon.RoleKey:  {Index: 0, Label: "CPF"},
				recon.RoleName: {Index: 1, Label: "TITULAR"},
			},
			wantMissing: []recon.Role{recon.RoleAmount},
		},
		{
			name:        "nothing matches",
			labels:      []string{"A", "B"},
			want:        recon.Resolution{},
			wantMissing: []recon.Role{recon.RoleKey, recon.RoleName, recon.RoleAmount},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := Resolve(tt.labels, invoiceSynonyms)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestResolveNormalizesVariants(t *testing.T) {
	labels := normalize.NormalizeAll([]string{"CPF", "Nome Funcionário", "Valor Total"})
	synonyms := recon.RoleSynonyms{
		recon.RoleKey:    {"cpf"},
		recon.RoleName:   {"NOME FUNCIONÁRIO"},
		recon.RoleAmount: {"valor total"},
	}

	got, missing := Resolve(labels, synonyms)
	assert.Empty(t, missing)
	assert.Equal(t, 1, got[recon.RoleName].Index)
	assert.Equal(t, 2, got[recon.RoleAmount].Index)
}

func TestRoleNames(t *testing.T) {
	assert.Equal(t, []string{"key", "amount"}, RoleNames([]recon.Role{recon.RoleKey, recon.RoleAmount}))
}
