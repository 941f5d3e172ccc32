package scoring

import (
	"regexp"
	"sort"
	"strings"
)

// Rubric field names, also used in score reasons.
const (
	FieldVintage        = "Vintage"
	FieldProducer       = "Producer"
	FieldAppellation    = "Appellation"
	FieldClassification = "Classification"
	FieldCru            = "Cru"
	FieldVineyard       = "Vineyard"
	FieldStyle          = "Style/Variety"
	FieldFormat         = "Format"
)

// LabelFields holds the rubric fields extracted from one label or listing
// title. An empty string means the field is absent.
type LabelFields struct {
	Vintage        string
	Producer       string
	Appellation    string
	Classification string
	Cru            string
	Vineyard       string
	Style          string
	Format         string
}

var classifications = []string{
	"premier grand cru classe",
	"1er grand cru classe",
	"grand cru classe",
	"cru bourgeois",
	"cru classe",
	"grand cru",
	"premier cru",
	"1er cru",
	"gran reserva",
	"reserva",
	"riserva",
	"villages",
}

var appellations = []string{
	"pauillac", "margaux", "saint julien", "saint estephe", "pessac leognan",
	"graves", "pomerol", "saint emilion", "haut medoc", "medoc", "sauternes",
	"barsac", "volnay", "pommard", "meursault", "puligny montrachet",
	"chassagne montrachet", "gevrey chambertin", "chambolle musigny",
	"vosne romanee", "nuits saint georges", "beaune", "corton", "chablis",
	"pouilly fuisse", "macon", "sancerre", "pouilly fume", "vouvray",
	"chinon", "champagne", "chateauneuf du pape", "hermitage", "cote rotie",
	"cornas", "gigondas", "vacqueyras", "bandol", "barolo", "barbaresco",
	"brunello di montalcino", "chianti classico", "chianti", "rioja",
	"ribera del duero", "priorat", "napa valley", "sonoma",
	"russian river valley", "willamette valley", "mosel", "rheingau",
}

var styles = []string{
	"cabernet sauvignon", "cabernet franc", "merlot", "pinot noir",
	"pinot gris", "pinot blanc", "chardonnay", "sauvignon blanc", "semillon",
	"riesling", "gewurztraminer", "chenin blanc", "viognier", "marsanne",
	"roussanne", "syrah", "shiraz", "grenache", "mourvedre", "carignan",
	"cinsault", "malbec", "petit verdot", "tempranillo", "garnacha",
	"sangiovese", "nebbiolo", "barbera", "dolcetto", "zinfandel",
	"primitivo", "gamay", "aligote", "gruner veltliner", "albarino",
	"verdejo", "touriga nacional", "blanc de blancs", "blanc de noirs",
	"brut nature", "extra brut", "brut rose", "brut", "rose", "demi sec",
	"moelleux",
}

var formats = []string{
	"half bottle", "double magnum", "magnum", "jeroboam", "rehoboam",
	"methuselah", "salmanazar", "balthazar", "nebuchadnezzar", "imperial",
	"piccolo", "split",
}

var (
	volumePattern   = regexp.MustCompile(`^\d+(\.\d+)?(ml|cl|l)$`)
	fourDigitYear   = regexp.MustCompile(`^(19|20)\d{2}$`)
	twoDigitVintage = regexp.MustCompile(`^\d{2}$`)
)

func init() {
	// longest phrases must win, e.g. "grand cru classe" over "grand cru"
	for _, vocab := range [][]string{classifications, appellations, styles, formats} {
		sort.SliceStable(vocab, func(i, j int) bool {
			return len(strings.Fields(vocab[i])) > len(strings.Fields(vocab[j]))
		})
	}
}

// ExtractFields pulls the rubric fields out of freeform label text. The
// extraction is purely lexical: known vocabulary and digit patterns are
// claimed first, the leading run of leftover tokens is taken as the
// producer, and any trailing leftovers name the cru or vineyard.
func ExtractFields(text string) LabelFields {
	tokens := strings.Fields(Normalize(text))
	consumed := make([]bool, len(tokens))
	var f LabelFields

	// vintage: a 4-digit year anywhere, a leading 2-digit year, or the NV
	// marker for non-vintage wines
	for i, t := range tokens {
		if fourDigitYear.MatchString(t) {
			f.Vintage = t
			consumed[i] = true
			break
		}
		if i == 0 && twoDigitVintage.MatchString(t) {
			f.Vintage = t
			consumed[i] = true
			break
		}
		if i == 0 && t == "nv" {
			consumed[i] = true
			break
		}
	}

	// bottle format: named sizes or a volume token like 1.5l / 375ml
	if start, n := findPhrase(tokens, consumed, formats); start >= 0 {
		f.Format = strings.Join(tokens[start:start+n], " ")
		mark(consumed, start, n)
	} else {
		for i, t := range tokens {
			if !consumed[i] && volumePattern.MatchString(t) {
				f.Format = t
				consumed[i] = true
				break
			}
		}
	}

	if start, n := findPhrase(tokens, consumed, classifications); start >= 0 {
		f.Classification = strings.Join(tokens[start:start+n], " ")
		mark(consumed, start, n)
	}

	if start, n := findPhrase(tokens, consumed, appellations); start >= 0 {
		f.Appellation = strings.Join(tokens[start:start+n], " ")
		mark(consumed, start, n)
	}

	if start, n := findPhrase(tokens, consumed, styles); start >= 0 {
		f.Style = strings.Join(tokens[start:start+n], " ")
		mark(consumed, start, n)
	}

	runs := unconsumedRuns(tokens, consumed)
	if len(runs) == 0 {
		return f
	}

	// the leading leftover run is the producer name
	f.Producer = strings.Join(runs[0], " ")

	// trailing leftovers name the specific cru for cru-level wines,
	// otherwise a vineyard designation
	if len(runs) > 1 {
		var rest []string
		for _, run := range runs[1:] {
			rest = append(rest, run...)
		}
		if strings.Contains(f.Classification, "cru") {
			f.Cru = strings.Join(rest, " ")
		} else {
			f.Vineyard = strings.Join(rest, " ")
		}
	}

	return f
}

// findPhrase locates the leftmost unconsumed window matching any phrase.
// Phrases are tried in vocabulary order, which is longest-first.
func findPhrase(tokens []string, consumed []bool, phrases []string) (int, int) {
	for _, phrase := range phrases {
		words := strings.Fields(phrase)
		n := len(words)
		for start := 0; start+n <= len(tokens); start++ {
			match := true
			for k := 0; k < n; k++ {
				if consumed[start+k] || tokens[start+k] != words[k] {
					match = false
					break
				}
			}
			if match {
				return start, n
			}
		}
	}
	return -1, 0
}

func mark(consumed []bool, start, n int) {
	for i := start; i < start+n; i++ {
		consumed[i] = true
	}
}

func unconsumedRuns(tokens []string, consumed []bool) [][]string {
	var runs [][]string
	var current []string
	for i, t := range tokens {
		if consumed[i] {
			if len(current) > 0 {
				runs = append(runs, current)
				current = nil
			}
			continue
		}
		current = append(current, t)
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}
