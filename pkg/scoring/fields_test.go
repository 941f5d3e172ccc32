package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  LabelFields
	}{
		{
			name:  "classified bordeaux",
			input: "2019 Château Test Pauillac Grand Cru Classé",
			want: LabelFields{
				Vintage:        "2019",
				Producer:       "chateau test",
				Appellation:    "pauillac",
				Classification: "grand cru classe",
			},
		},
		{
			name:  "burgundy premier cru with a named cru",
			input: "2022 Domaine de Montille Volnay 1er Cru Taillepieds",
			want: LabelFields{
				Vintage:        "2022",
				Producer:       "domaine de montille",
				Appellation:    "volnay",
				Classification: "1er cru",
				Cru:            "taillepieds",
			},
		},
		{
			name:  "varietal wine without vintage",
			input: "Domaine Example Chardonnay",
			want: LabelFields{
				Producer: "domaine example",
				Style:    "chardonnay",
			},
		},
		{
			name:  "non-vintage champagne with a volume format",
			input: "NV Laurent Champagne Brut 1.5l",
			want: LabelFields{
				Producer:    "laurent",
				Appellation: "champagne",
				Style:       "brut",
				Format:      "1.5l",
			},
		},
		{
			name:  "named bottle size",
			input: "2016 Chateau Test Margaux Magnum",
			want: LabelFields{
				Vintage:     "2016",
				Producer:    "chateau test",
				Appellation: "margaux",
				Format:      "magnum",
			},
		},
		{
			name:  "trailing leftovers without a cru classification become the vineyard",
			input: "2018 Ridge Cabernet Sauvignon Monte Bello",
			want: LabelFields{
				Vintage:  "2018",
				Producer: "ridge",
				Style:    "cabernet sauvignon",
				Vineyard: "monte bello",
			},
		},
		{
			name:  "leading two digit vintage",
			input: "78 Domaine Example",
			want: LabelFields{
				Vintage:  "78",
				Producer: "domaine example",
			},
		},
		{
			name:  "longest classification phrase wins",
			input: "2015 Chateau Test Premier Grand Cru Classe",
			want: LabelFields{
				Vintage:        "2015",
				Producer:       "chateau test",
				Classification: "premier grand cru classe",
			},
		},
		{
			name:  "empty label",
			input: "",
			want:  LabelFields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFields(tt.input))
		})
	}
}
