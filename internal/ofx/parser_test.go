package ofx

import (
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite/centsible/internal/model"
)

const sampleOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260315120000
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>0001
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260301
<DTEND>20260331
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260302
<TRNAMT>-45.67
<FITID>1001
<NAME>STARBUCKS COFFEE 1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20260312
<TRNAMT>2500.00
<FITID>1002
<NAME>PAYROLL DEPOSIT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20260331
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

func TestParseFile(t *testing.T) {
	parser := NewParser()

	records, err := parser.ParseFile(strings.NewReader(sampleOFX))
	require.NoError(t, err)
	require.Len(t, records, 2)

	coffee := records[0]
	assert.Equal(t, "STARBUCKS COFFEE 1234", coffee.Description)
	assert.Equal(t, -45.67, coffee.Amount)
	assert.Equal(t, model.TypeExpense, coffee.DeclaredType)
	assert.Equal(t, "checking", coffee.AccountType)
	assert.Equal(t, 45.67, coffee.Magnitude())
	assert.Equal(t, 2026, coffee.Date.Year())

	payroll := records[1]
	assert.Equal(t, 2500.00, payroll.Amount)
	assert.Equal(t, model.TypeIncome, payroll.DeclaredType)
	assert.Equal(t, model.TypeIncome, payroll.ResolveType())
}

func TestParseFile_LeadingWhitespace(t *testing.T) {
	parser := NewParser()

	records, err := parser.ParseFile(strings.NewReader("\n\n  " + sampleOFX))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseFile_MixedCaseSeverity(t *testing.T) {
	parser := NewParser()
	mangled := strings.ReplaceAll(sampleOFX, "<SEVERITY>INFO", "<SEVERITY>Info</SEVERITY>")

	records, err := parser.ParseFile(strings.NewReader(mangled))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseFile_Garbage(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseFile(strings.NewReader("this is not an OFX file"))
	require.Error(t, err)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name string
		tx   ofxgo.Transaction
		want string
	}{
		{
			name: "payee preferred",
			tx: ofxgo.Transaction{
				Name:  "POS PURCHASE SHELL OIL",
				Payee: &ofxgo.Payee{Name: "Shell"},
			},
			want: "Shell",
		},
		{
			name: "processor prefix stripped",
			tx:   ofxgo.Transaction{Name: "POS PURCHASE SHELL OIL 57442"},
			want: "SHELL OIL 57442",
		},
		{
			name: "memo replaces generic name",
			tx:   ofxgo.Transaction{Name: "DEBIT", Memo: "WHOLE FOODS MARKET"},
			want: "WHOLE FOODS MARKET",
		},
		{
			name: "leading date trimmed",
			tx:   ofxgo.Transaction{Name: "03/02 STARBUCKS"},
			want: "STARBUCKS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.extractMerchantName(tt.tx))
		})
	}
}

func TestIsGenericDescription(t *testing.T) {
	assert.True(t, isGenericDescription("DEBIT"))
	assert.True(t, isGenericDescription("card purchase"))
	assert.False(t, isGenericDescription("STARBUCKS"))
}
