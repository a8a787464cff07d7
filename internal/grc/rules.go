package grc

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// ErrInvalidRuleSet is returned when weights or profiles break the
// strength ordering or fall outside 0..100.
var ErrInvalidRuleSet = errors.New("invalid rule set")

// Weights are the framework-independent scoring constants
type Weights struct {
	CrossReference int `mapstructure:"cross_reference" json:"cross_reference" yaml:"cross_reference"`
	ExactStandard  int `mapstructure:"exact_standard" json:"exact_standard" yaml:"exact_standard"`
	GapPenalty     int `mapstructure:"gap_penalty" json:"gap_penalty" yaml:"gap_penalty"`
}

// KeywordRule ties a word in a Master domain to the candidate domains
// (categories) it is allowed to relate to.
type KeywordRule struct {
	Keyword    string   `mapstructure:"keyword" json:"keyword" yaml:"keyword"`
	Categories []string `mapstructure:"categories" json:"categories" yaml:"categories"`
}

// FrameworkProfile holds the per-framework bases for the partial and
// keyword rules plus the keyword table.
type FrameworkProfile struct {
	Partial  int           `mapstructure:"partial" json:"partial" yaml:"partial"`
	Keyword  int           `mapstructure:"keyword" json:"keyword" yaml:"keyword"`
	Keywords []KeywordRule `mapstructure:"keywords" json:"keywords" yaml:"keywords"`
}

func (p FrameworkProfile) clone() FrameworkProfile {
	out := p
	out.Keywords = make([]KeywordRule, len(p.Keywords))
	for i, kw := range p.Keywords {
		out.Keywords[i] = KeywordRule{
			Keyword:    kw.Keyword,
			Categories: append([]string(nil), kw.Categories...),
		}
	}
	return out
}

// DefaultWeights returns the built-in scoring constants
func DefaultWeights() Weights {
	return Weights{
		CrossReference: 95,
		ExactStandard:  90,
		GapPenalty:     10,
	}
}

// FallbackProfile scores frameworks that have no profile of their own.
// It has no keywords, so the keyword rule never fires for them.
func FallbackProfile() FrameworkProfile {
	return FrameworkProfile{Partial: 65, Keyword: 60}
}

// DefaultProfiles returns the built-in per-framework profiles
func DefaultProfiles() map[model.Framework]FrameworkProfile {
	return map[model.Framework]FrameworkProfile{
		model.FrameworkTripwireCore: {
			Partial: 80,
			Keyword: 70,
			Keywords: []KeywordRule{
				{Keyword: "Access", Categories: []string{"Access - AD", "Access - Windows", "Access - Unix"}},
				{Keyword: "Change", Categories: []string{"Change - Config", "Change - Baseline"}},
				{Keyword: "Logging", Categories: []string{"Logging - SIEM"}},
				{Keyword: "Vulnerability", Categories: []string{"Vulnerability - Scanning", "Vulnerability - Patching"}},
				{Keyword: "Backup", Categories: []string{"Backup - Recovery"}},
				{Keyword: "Incident", Categories: []string{"Incident - Response"}},
			},
		},
		model.FrameworkAlert: {
			Partial: 75,
			Keyword: 65,
			Keywords: []KeywordRule{
				{Keyword: "Access", Categories: []string{"Authentication Alerts"}},
				{Keyword: "Change", Categories: []string{"Configuration Change Alerts"}},
				{Keyword: "Logging", Categories: []string{"Log Source Alerts"}},
				{Keyword: "Malware", Categories: []string{"Malware Alerts"}},
				{Keyword: "Network", Categories: []string{"Network Alerts"}},
				{Keyword: "Vulnerability", Categories: []string{"Vulnerability Alerts"}},
			},
		},
		model.FrameworkNIST: {
			Partial: 70,
			Keyword: 70,
			Keywords: []KeywordRule{
				{Keyword: "Access", Categories: []string{"Access Control", "Identification and Authentication"}},
				{Keyword: "Change", Categories: []string{"Configuration Management"}},
				{Keyword: "Logging", Categories: []string{"Audit and Accountability"}},
				{Keyword: "Vulnerability", Categories: []string{"Risk Assessment", "System and Information Integrity"}},
				{Keyword: "Backup", Categories: []string{"Contingency Planning"}},
				{Keyword: "Incident", Categories: []string{"Incident Response"}},
				{Keyword: "Malware", Categories: []string{"System and Information Integrity"}},
				{Keyword: "Network", Categories: []string{"System and Communications Protection"}},
			},
		},
		model.FrameworkCIS: {
			Partial: 70,
			Keyword: 65,
			Keywords: []KeywordRule{
				{Keyword: "Access", Categories: []string{"Account Management", "Access Control Management"}},
				{Keyword: "Change", Categories: []string{"Secure Configuration"}},
				{Keyword: "Logging", Categories: []string{"Audit Log Management"}},
				{Keyword: "Vulnerability", Categories: []string{"Continuous Vulnerability Management"}},
				{Keyword: "Backup", Categories: []string{"Data Recovery"}},
				{Keyword: "Incident", Categories: []string{"Incident Response Management"}},
				{Keyword: "Malware", Categories: []string{"Malware Defenses"}},
				{Keyword: "Network", Categories: []string{"Network Monitoring and Defense", "Network Infrastructure Management"}},
			},
		},
		model.FrameworkPCI: {
			Partial: 75,
			Keyword: 65,
			Keywords: []KeywordRule{
				{Keyword: "Access", Categories: []string{"Req 7 - Restrict Access", "Req 8 - Identify and Authenticate"}},
				{Keyword: "Change", Categories: []string{"Req 2 - Secure Configurations", "Req 6 - Secure Systems and Software"}},
				{Keyword: "Logging", Categories: []string{"Req 10 - Log and Monitor"}},
				{Keyword: "Vulnerability", Categories: []string{"Req 6 - Secure Systems and Software", "Req 11 - Test Security Regularly"}},
				{Keyword: "Incident", Categories: []string{"Req 12 - Policy and Incident Response"}},
				{Keyword: "Malware", Categories: []string{"Req 5 - Malware Protection"}},
				{Keyword: "Network", Categories: []string{"Req 1 - Network Security Controls"}},
			},
		},
		model.FrameworkHIPAA: {
			Partial: 65,
			Keyword: 60,
			Keywords: []KeywordRule{
				{Keyword: "Access", Categories: []string{"Access Control", "Person or Entity Authentication"}},
				{Keyword: "Change", Categories: []string{"Integrity"}},
				{Keyword: "Logging", Categories: []string{"Audit Controls"}},
				{Keyword: "Vulnerability", Categories: []string{"Security Management Process"}},
				{Keyword: "Backup", Categories: []string{"Contingency Plan"}},
				{Keyword: "Incident", Categories: []string{"Security Incident Procedures"}},
				{Keyword: "Malware", Categories: []string{"Security Awareness and Training"}},
				{Keyword: "Network", Categories: []string{"Transmission Security"}},
			},
		},
		model.FrameworkSOX: {
			Partial: 65,
			Keyword: 60,
			Keywords: []KeywordRule{
				{Keyword: "Access", Categories: []string{"ITGC - Access to Programs and Data"}},
				{Keyword: "Change", Categories: []string{"ITGC - Program Changes"}},
				{Keyword: "Logging", Categories: []string{"ITGC - Computer Operations"}},
				{Keyword: "Backup", Categories: []string{"ITGC - Computer Operations"}},
				{Keyword: "Incident", Categories: []string{"ITGC - Computer Operations"}},
			},
		},
	}
}

// Verdict is the outcome of evaluating one (master, candidate) pair.
// A zero Verdict means no rule fired.
type Verdict struct {
	MappingType model.MappingType
	Base        int
	Confidence  int
	Rule        model.RuleKind
	Gaps        []string
}

// Matched reports whether a rule fired
func (v Verdict) Matched() bool {
	return v.MappingType != model.MappingNone
}

// pair carries one evaluation's inputs with pre-normalized reference sets
type pair struct {
	master        *model.ControlRecord
	candidate     *model.ControlRecord
	target        model.Framework
	masterRefs    mapset.Set[string]
	candidateRefs mapset.Set[string]
}

type compiledKeyword struct {
	keyword    string
	phrase     string
	categories mapset.Set[string]
}

type profile struct {
	FrameworkProfile
	keywords []compiledKeyword
}

// rule is one row of the matching table. Rules see only the pair, the
// target framework's profile and the weights.
type rule struct {
	kind model.RuleKind
	eval func(p *pair, prof *profile, w Weights) (Verdict, bool)
}

// matchingRules is evaluated top to bottom and the first rule that
// fires decides the pair.
var matchingRules = []rule{
	{kind: model.RuleCrossReference, eval: crossReferenceRule},
	{kind: model.RuleExactStandard, eval: exactStandardRule},
	{kind: model.RulePartialStandard, eval: partialStandardRule},
	{kind: model.RuleDomainKeyword, eval: domainKeywordRule},
}

// RuleSet is an immutable, validated matching configuration
type RuleSet struct {
	weights  Weights
	profiles map[model.Framework]*profile
	fallback *profile
}

// DefaultRuleSet returns the built-in rule set
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(DefaultWeights(), DefaultProfiles())
	if err != nil {
		panic(err)
	}
	return rs
}

// NewRuleSet validates and compiles weights and profiles. Frameworks
// missing from profiles score with FallbackProfile.
func NewRuleSet(w Weights, profiles map[model.Framework]FrameworkProfile) (*RuleSet, error) {
	if err := validateWeights(w); err != nil {
		return nil, err
	}

	rs := &RuleSet{
		weights:  w,
		profiles: make(map[model.Framework]*profile, len(profiles)),
	}

	fallback, err := compileProfile("fallback", FallbackProfile(), w)
	if err != nil {
		return nil, err
	}
	rs.fallback = fallback

	for fw, p := range profiles {
		compiled, err := compileProfile(string(fw), p, w)
		if err != nil {
			return nil, err
		}
		rs.profiles[fw] = compiled
	}
	return rs, nil
}

func validateWeights(w Weights) error {
	if !inRange(w.CrossReference) || !inRange(w.ExactStandard) {
		return fmt.Errorf("%w: bases must be within 0..100", ErrInvalidRuleSet)
	}
	if w.CrossReference < w.ExactStandard {
		return fmt.Errorf("%w: cross-reference base %d below exact-standard base %d",
			ErrInvalidRuleSet, w.CrossReference, w.ExactStandard)
	}
	if w.GapPenalty < 0 {
		return fmt.Errorf("%w: gap penalty %d is negative", ErrInvalidRuleSet, w.GapPenalty)
	}
	return nil
}

func compileProfile(name string, p FrameworkProfile, w Weights) (*profile, error) {
	if !inRange(p.Partial) || !inRange(p.Keyword) {
		return nil, fmt.Errorf("%w: %s: bases must be within 0..100", ErrInvalidRuleSet, name)
	}
	if p.Partial > w.ExactStandard {
		return nil, fmt.Errorf("%w: %s: partial base %d above exact-standard base %d",
			ErrInvalidRuleSet, name, p.Partial, w.ExactStandard)
	}
	if p.Keyword > p.Partial {
		return nil, fmt.Errorf("%w: %s: keyword base %d above partial base %d",
			ErrInvalidRuleSet, name, p.Keyword, p.Partial)
	}

	compiled := &profile{FrameworkProfile: p.clone()}
	for _, kw := range p.Keywords {
		phrase := wordPhrase(kw.Keyword)
		if phrase == "" {
			return nil, fmt.Errorf("%w: %s: blank keyword", ErrInvalidRuleSet, name)
		}
		cats := mapset.NewThreadUnsafeSet[string]()
		for _, c := range kw.Categories {
			if n := normalize(c); n != "" {
				cats.Add(n)
			}
		}
		if cats.Cardinality() == 0 {
			return nil, fmt.Errorf("%w: %s: keyword %q has no categories", ErrInvalidRuleSet, name, kw.Keyword)
		}
		compiled.keywords = append(compiled.keywords, compiledKeyword{
			keyword:    strings.TrimSpace(kw.Keyword),
			phrase:     phrase,
			categories: cats,
		})
	}
	return compiled, nil
}

func inRange(n int) bool {
	return n >= 0 && n <= 100
}

// Weights returns the scoring constants
func (rs *RuleSet) Weights() Weights {
	return rs.weights
}

// Profile returns the profile used for a target framework and whether it
// is a configured one rather than the fallback.
func (rs *RuleSet) Profile(fw model.Framework) (FrameworkProfile, bool) {
	if p, ok := rs.profiles[fw]; ok {
		return p.FrameworkProfile.clone(), true
	}
	return rs.fallback.FrameworkProfile.clone(), false
}

// Frameworks lists the frameworks with a configured profile, canonically sorted
func (rs *RuleSet) Frameworks() []model.Framework {
	fws := make([]model.Framework, 0, len(rs.profiles))
	for fw := range rs.profiles {
		fws = append(fws, fw)
	}
	model.SortFrameworks(fws)
	return fws
}

func (rs *RuleSet) profileFor(fw model.Framework) *profile {
	if p, ok := rs.profiles[fw]; ok {
		return p
	}
	return rs.fallback
}

// Evaluate scores a single pair. candidate is treated as a record of
// target regardless of its own Framework field.
func (rs *RuleSet) Evaluate(master, candidate model.ControlRecord, target model.Framework) Verdict {
	return rs.evaluate(&pair{
		master:        &master,
		candidate:     &candidate,
		target:        target,
		masterRefs:    referenceSet(master.CrossReferenceIDs),
		candidateRefs: referenceSet(candidate.CrossReferenceIDs),
	})
}

func (rs *RuleSet) evaluate(p *pair) Verdict {
	prof := rs.profileFor(p.target)
	for _, r := range matchingRules {
		v, ok := r.eval(p, prof, rs.weights)
		if !ok {
			continue
		}
		v.Rule = r.kind
		if note := frequencyGap(p.master, p.candidate); note != "" {
			v.Gaps = append(v.Gaps, note)
		}
		v.Confidence = score(v.Base, len(v.Gaps), rs.weights.GapPenalty)
		return v
	}
	return Verdict{}
}

// score applies the per-gap penalty and clamps to 0..100
func score(base, gaps, penalty int) int {
	c := base - penalty*gaps
	switch {
	case c < 0:
		return 0
	case c > 100:
		return 100
	}
	return c
}

func crossReferenceRule(p *pair, _ *profile, w Weights) (Verdict, bool) {
	linked := p.masterRefs.Contains(normalize(p.candidate.ID)) ||
		p.masterRefs.Contains(qualify(p.target, p.candidate.ID)) ||
		p.candidateRefs.Contains(normalize(p.master.ID)) ||
		p.candidateRefs.Contains(qualify(model.FrameworkMasterList, p.master.ID))
	if !linked {
		return Verdict{}, false
	}
	return Verdict{MappingType: model.MappingFull, Base: w.CrossReference}, true
}

func exactStandardRule(p *pair, _ *profile, w Weights) (Verdict, bool) {
	m, c := p.master, p.candidate
	if !sameCode(m, c) {
		return Verdict{}, false
	}
	req := normalize(m.StandardRequirement)
	if req == "" || req != normalize(c.StandardRequirement) {
		return Verdict{}, false
	}
	if normalize(m.Domain) != normalize(c.Domain) {
		return Verdict{}, false
	}
	return Verdict{MappingType: model.MappingFull, Base: w.ExactStandard}, true
}

func partialStandardRule(p *pair, prof *profile, _ Weights) (Verdict, bool) {
	m, c := p.master, p.candidate
	var gaps []string

	switch {
	case sameCode(m, c):
		mr, cr := normalize(m.StandardRequirement), normalize(c.StandardRequirement)
		switch {
		case mr == "" && cr == "":
			gaps = append(gaps, "standard requirement not specified")
		case mr != cr:
			gaps = append(gaps, fmt.Sprintf("standard requirement differs: %s vs %s",
				orNone(m.StandardRequirement), orNone(c.StandardRequirement)))
		}
		if normalize(m.Domain) != normalize(c.Domain) {
			gaps = append(gaps, fmt.Sprintf("different domains: %s vs %s",
				strings.TrimSpace(m.Domain), strings.TrimSpace(c.Domain)))
		}
	case normalize(m.Domain) == normalize(c.Domain):
		gaps = append(gaps, standardGap(m, c, true))
	default:
		return Verdict{}, false
	}

	return Verdict{MappingType: model.MappingPartial, Base: prof.Partial, Gaps: gaps}, true
}

func domainKeywordRule(p *pair, prof *profile, _ Weights) (Verdict, bool) {
	domain := wordPhrase(p.master.Domain)
	category := normalize(p.candidate.Domain)
	for _, kw := range prof.keywords {
		if !containsPhrase(domain, kw.phrase) || !kw.categories.Contains(category) {
			continue
		}
		gaps := []string{"domain matched by keyword only: " + kw.keyword}
		if note := standardGap(p.master, p.candidate, false); note != "" {
			gaps = append(gaps, note)
		}
		return Verdict{MappingType: model.MappingRelated, Base: prof.Keyword, Gaps: gaps}, true
	}
	return Verdict{}, false
}

// standardGap describes how two records' standard codes fail to agree.
// When neither carries a code the note is only produced if unverified is set.
func standardGap(m, c *model.ControlRecord, unverified bool) string {
	mc, cc := strings.TrimSpace(m.StandardCode), strings.TrimSpace(c.StandardCode)
	switch {
	case mc != "" && cc != "":
		if strings.EqualFold(mc, cc) {
			return ""
		}
		return fmt.Sprintf("standard code mismatch: %s vs %s", mc, cc)
	case mc != "":
		return fmt.Sprintf("standard code %s not verified on target", mc)
	case cc != "":
		return fmt.Sprintf("target standard code %s not present on master", cc)
	case unverified:
		return "standard code not verified"
	}
	return ""
}

func frequencyGap(m, c *model.ControlRecord) string {
	mf, cf := normalize(string(m.Frequency)), normalize(string(c.Frequency))
	if mf == "" || cf == "" || mf == cf {
		return ""
	}
	return fmt.Sprintf("different frequency requirements: %s vs %s", m.Frequency, c.Frequency)
}

func sameCode(m, c *model.ControlRecord) bool {
	code := normalize(m.StandardCode)
	return code != "" && code == normalize(c.StandardCode)
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "(none)"
	}
	return s
}

// wordPhrase lowercases s and collapses every run of non-alphanumerics to
// one space, padding both ends so phrases only match on word boundaries.
func wordPhrase(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	return " " + strings.Join(words, " ") + " "
}

func containsPhrase(text, phrase string) bool {
	return text != "" && strings.Contains(text, phrase)
}

// qualify builds the normalized "framework:id" form of a reference
func qualify(fw model.Framework, id string) string {
	return normalize(string(fw)) + ":" + normalize(id)
}

// normalizeRef normalizes a cross-reference entry. A prefix naming a
// known framework (by name or alias) is rewritten to the canonical name.
func normalizeRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, ":"); i > 0 {
		if fw, err := model.ParseFramework(ref[:i]); err == nil {
			return qualify(fw, ref[i+1:])
		}
	}
	return normalize(ref)
}

func referenceSet(refs []string) mapset.Set[string] {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, ref := range refs {
		if n := normalizeRef(ref); n != "" {
			set.Add(n)
		}
	}
	return set
}

