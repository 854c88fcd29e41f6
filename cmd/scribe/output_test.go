package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/farcloser/scribe"
	"github.com/farcloser/scribe/internal/types"
)

func hotspot(key, rule, severity string) scribe.Hotspot {
	return scribe.Hotspot{
		HotspotSummary: types.HotspotSummary{
			Key: key, Component: "acme:src/Main.java", Line: 7, Message: "Check this", VulnerabilityProbability: "HIGH",
		},
		Rule:     rule,
		Severity: severity,
		Language: "java",
	}
}

var _ = Describe("output", func() {
	languages := scribe.NewLanguages()
	languages.Load(map[string]scribe.Language{"java": {Key: "java", Name: "Java"}})

	DescribeTable("links rules to their documentation",
		func(rule, expected string) {
			h := hotspot("AX1", rule, "MAJOR")
			Expect(ruleURL(&h)).To(Equal(expected))
		},
		Entry("java", "java:S2068", "https://rules.sonarsource.com/java/RSPEC-2068"),
		Entry("python", "python:S4790", "https://rules.sonarsource.com/python/RSPEC-4790"),
		Entry("no repository", "S2068", "https://rules.sonarsource.com"),
	)

	It("renders a hotspot as a single line", func() {
		h := hotspot("AX1", "java:S2068", "BLOCKER")
		h.Resolution = ptr("SAFE")

		Expect(hotspotLine(&h, languages)).To(Equal(
			"[high] java:S2068 acme:src/Main.java:7: Check this (Java, 0 comments) -> SAFE" +
				" - https://rules.sonarsource.com/java/RSPEC-2068",
		))
	})

	It("groups by severity with ordered labels and keeps unknown severities", func() {
		grouped := groupBySeverity([]scribe.Hotspot{
			hotspot("A", "java:S1", "MINOR"),
			hotspot("B", "java:S2", "BLOCKER"),
			hotspot("C", "java:S3", "MINOR"),
			hotspot("D", "java:S4", "HIGH"),
		}, languages)

		Expect(grouped).To(HaveLen(3))
		Expect(grouped).To(HaveKey("1. Blocker"))
		Expect(grouped["4. Minor"]).To(HaveLen(2))
		Expect(grouped).To(HaveKey("HIGH"))
	})

	It("summarizes a sweep and counts resolutions", func() {
		reviewed := hotspot("R1", "java:S1", "MAJOR")
		reviewed.Resolution = ptr("FIXED")

		meta := buildFriendlyOutput(&scribe.Sweep{
			ToReview: []scribe.Hotspot{hotspot("T1", "java:S1", "MAJOR")},
			Reviewed: []scribe.Hotspot{reviewed},
		}, languages)

		Expect(meta["summary"]).To(Equal("2 hotspots (1 to review, 1 reviewed)"))
		Expect(meta).To(HaveKey("to_review"))
		Expect(meta).To(HaveKey("reviewed"))
		Expect(meta["resolutions"]).To(Equal(map[string]any{"FIXED": 1}))
	})

	It("omits empty groups", func() {
		meta := buildFriendlyOutput(&scribe.Sweep{}, languages)

		Expect(meta).To(Equal(map[string]any{"summary": "0 hotspots (0 to review, 0 reviewed)"}))
	})
})

var _ = Describe("parseStatuses", func() {
	DescribeTable("maps the status flag",
		func(raw string, expected []scribe.Status) {
			statuses, err := parseStatuses(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(Equal(expected))
		},
		Entry("all", "all", []scribe.Status{scribe.StatusToReview, scribe.StatusReviewed}),
		Entry("ALL", "ALL", []scribe.Status{scribe.StatusToReview, scribe.StatusReviewed}),
		Entry("to_review", "to_review", []scribe.Status{scribe.StatusToReview}),
		Entry("reviewed", "REVIEWED", []scribe.Status{scribe.StatusReviewed}),
	)

	It("rejects anything else", func() {
		_, err := parseStatuses("open")
		Expect(err).To(MatchError(ContainSubstring("invalid hotspot status")))
	})
})

func ptr(s string) *string {
	return &s
}
