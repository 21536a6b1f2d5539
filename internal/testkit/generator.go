package testkit

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
)

// PopulationConfig configures the synthetic invoice/payroll generator
type PopulationConfig struct {
	People          int     `json:"people"`
	DependentsMax   int     `json:"dependents_max"`
	MismatchRate    float64 `json:"mismatch_rate"`
	InvoiceOnlyRate float64 `json:"invoice_only_rate"`
	PayrollOnlyRate float64 `json:"payroll_only_rate"`
	GarbledRate     float64 `json:"garbled_rate"`
	TitleRows       int     `json:"title_rows"`
	Seed            int64   `json:"seed"`
}

// DefaultPopulationConfig returns sensible defaults for demo data
func DefaultPopulationConfig() PopulationConfig {
	return PopulationConfig{
		People:          50,
		DependentsMax:   2,
		MismatchRate:    0.15,
		InvoiceOnlyRate: 0.05,
		PayrollOnlyRate: 0.05,
		GarbledRate:     0.0,
		TitleRows:       1,
		Seed:            42,
	}
}

// Population is a generated workbook plus the differences a correct
// reconciliation of it must report, keyed by digits-only CPF
type Population struct {
	Workbook *Workbook
	Expected map[string]decimal.Decimal
	Keys     []string
}

// PopulationGenerator produces invoice and payroll sheets for one
// synthetic population
type PopulationGenerator struct {
	config PopulationConfig
	rng    *rand.Rand
}

// NewPopulationGenerator creates a generator with a deterministic seed
func NewPopulationGenerator(config PopulationConfig) *PopulationGenerator {
	return &PopulationGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Élida", "Fábio", "Gisele", "Hélio", "Iara", "João", "Luíza", "Márcio", "Nívea", "Otávio", "Paula", "Raí"}
	lastNames  = []string{"Silva", "Souza", "Araújo", "Conceição", "Pereira", "Gonçalves", "Lima", "Brandão", "Ribeiro", "Simões"}
)

// Generate builds the workbook. Garbled amounts never enter the payroll
// side so Expected stays exact.
func (g *PopulationGenerator) Generate() *Population {
	cfg := g.config
	invoice := make([][]interface{}, 0, cfg.People*2+cfg.TitleRows+1)
	payroll := make([][]interface{}, 0, cfg.People+1)

	for i := 0; i < cfg.TitleRows; i++ {
		invoice = append(invoice, Row(fmt.Sprintf("Relatório de cobrança %d", i+1)))
	}
	invoice = append(invoice, InvoiceHeader())
	payroll = append(payroll, PayrollHeader())

	expected := make(map[string]decimal.Decimal)
	seen := make(map[string]bool)

	for i := 0; i < cfg.People; i++ {
		digits := g.cpf(seen)
		name := g.name()

		onlyInvoice := g.rng.Float64() < cfg.InvoiceOnlyRate
		onlyPayroll := !onlyInvoice && g.rng.Float64() < cfg.PayrollOnlyRate

		invoiceTotal := decimal.Zero
		if !onlyPayroll {
			lines := 1 + g.rng.Intn(cfg.DependentsMax+1)
			for l := 0; l < lines; l++ {
				amount := g.amount()
				beneficiary := name
				if l > 0 {
					beneficiary = g.name()
				}
				if g.rng.Float64() < cfg.GarbledRate {
					invoice = append(invoice, Row(formatCPF(digits), name, beneficiary, "n/d"))
					continue
				}
				invoiceTotal = invoiceTotal.Add(amount)
				invoice = append(invoice, Row(formatCPF(digits), name, beneficiary, amount.InexactFloat64()))
			}
		}

		payrollTotal := decimal.Zero
		if !onlyInvoice {
			payrollTotal = invoiceTotal
			if onlyPayroll {
				payrollTotal = g.amount()
			} else if g.rng.Float64() < cfg.MismatchRate {
				payrollTotal = payrollTotal.Add(decimal.New(int64(g.rng.Intn(4000)-2000), -2))
			}
			payroll = append(payroll, Row(digits, name, payrollTotal.InexactFloat64()))
		}

		expected[digits] = invoiceTotal.Sub(payrollTotal)
	}

	keys := make([]string, 0, len(expected))
	for k := range expected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &Population{
		Workbook: NewWorkbook().Sheet("FATURA", invoice...).Sheet("FOLHA", payroll...),
		Expected: expected,
		Keys:     keys,
	}
}

// cpf returns an unused eleven digit key
func (g *PopulationGenerator) cpf(seen map[string]bool) string {
	for {
		digits := fmt.Sprintf("%011d", g.rng.Int63n(99999999999)+1)
		if !seen[digits] {
			seen[digits] = true
			return digits
		}
	}
}

func (g *PopulationGenerator) name() string {
	return firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))]
}

// amount draws a premium between 10.00 and 510.00 in cents
func (g *PopulationGenerator) amount() decimal.Decimal {
	return decimal.New(int64(1000+g.rng.Intn(50000)), -2)
}

// formatCPF renders digits as 000.000.000-00
func formatCPF(digits string) string {
	if len(digits) != 11 {
		return digits
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}
