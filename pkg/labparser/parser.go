package labparser

import (
	"hash/fnv"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/synaptica-ai/diagnostics/pkg/common/logger"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"golang.org/x/text/unicode/norm"
)

type compiledTest struct {
	key       string
	plausible knowledge.Range
	patterns  []*regexp.Regexp
}

// Parser extracts numeric readings from OCR text. It is immutable after New.
type Parser struct {
	tests []compiledTest
	index map[string]int
}

// New compiles every test's alternatives in knowledge order. A pattern that fails to
// compile, or has no capture group, is dropped with a warning.
func New(base *knowledge.Base) *Parser {
	p := &Parser{index: make(map[string]int)}
	log := logger.Component("labparser")

	for _, def := range base.LabTests() {
		ct := compiledTest{key: def.Key, plausible: def.Plausible}
		for _, pattern := range def.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				log.WithError(err).WithField("test", def.Key).Warn("skipping invalid lab pattern")
				continue
			}
			if re.NumSubexp() < 1 {
				log.WithField("test", def.Key).WithField("pattern", pattern).Warn("skipping lab pattern without capture group")
				continue
			}
			ct.patterns = append(ct.patterns, re)
		}
		p.index[def.Key] = len(p.tests)
		p.tests = append(p.tests, ct)
	}
	return p
}

// Parse never fails: unmatched tests and implausible readings are simply absent.
func (p *Parser) Parse(text string) map[string]float64 {
	values := make(map[string]float64)
	if strings.TrimSpace(text) == "" {
		return values
	}
	lower := strings.ToLower(norm.NFKC.String(text))

	for _, test := range p.tests {
		for _, re := range test.patterns {
			m := re.FindStringSubmatch(lower)
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if Plausible(test.plausible, v) {
				values[test.key] = v
				break
			}
		}
	}
	return values
}

// Plausible reports whether v survives the artifact filter for a test.
// Tests the parser does not know are accepted.
func (p *Parser) Plausible(key string, v float64) bool {
	i, ok := p.index[key]
	if !ok {
		return true
	}
	return Plausible(p.tests[i].plausible, v)
}

// Plausible is the closed-interval artifact filter.
func Plausible(r knowledge.Range, v float64) bool {
	return !math.IsNaN(v) && r.Contains(v)
}

// DemoSeed mixes the configured seed with the input text so identical inputs reproduce.
func DemoSeed(seed int64, text string) int64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return seed ^ int64(h.Sum64())
}

// DemoValues produces a representative panel. Output depends only on seed.
func DemoValues(seed int64) map[string]float64 {
	r := rand.New(rand.NewSource(seed))
	return map[string]float64{
		"glucose":     float64(85 + r.Intn(96)),
		"cholesterol": float64(160 + r.Intn(91)),
		"hdl":         float64(35 + r.Intn(31)),
		"ldl":         float64(80 + r.Intn(81)),
		"hemoglobin":  math.Round((11.5+r.Float64()*5)*10) / 10,
	}
}
