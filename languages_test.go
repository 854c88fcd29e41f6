package scribe_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/farcloser/scribe"
	"github.com/farcloser/scribe/internal/types"
)

type languageList struct {
	languages []types.Language
	err       error
}

func (l languageList) ListLanguages(context.Context) ([]types.Language, error) {
	return l.languages, l.err
}

var _ = Describe("Languages", func() {
	It("resolves every loaded key to its display name", func() {
		registry := scribe.NewLanguages()
		registry.Load(map[string]scribe.Language{
			"java": {Key: "java", Name: "Java"},
			"py":   {Key: "py", Name: "Python"},
			"ts":   {Key: "ts", Name: "TypeScript"},
		})

		Expect(registry.Resolve("java")).To(Equal("Java"))
		Expect(registry.Resolve("py")).To(Equal("Python"))
		Expect(registry.Resolve("ts")).To(Equal("TypeScript"))
	})

	It("resolves unknown keys to the placeholder", func() {
		registry := scribe.NewLanguages()
		registry.Load(map[string]scribe.Language{"java": {Key: "java", Name: "Java"}})

		Expect(registry.Resolve("cobol")).To(Equal(scribe.UnknownLanguage))
		Expect(registry.Resolve("")).To(Equal("?"))
	})

	It("always resolves to the placeholder when empty", func() {
		Expect(scribe.NewLanguages().Resolve("java")).To(Equal("?"))

		var registry *scribe.Languages
		Expect(registry.Resolve("java")).To(Equal("?"))
		Expect(registry.Len()).To(BeZero())

		loaded := scribe.NewLanguages()
		loaded.Load(nil)
		Expect(loaded.Resolve("java")).To(Equal("?"))
	})

	It("replaces the whole mapping on load", func() {
		registry := scribe.NewLanguages()
		registry.Load(map[string]scribe.Language{"java": {Key: "java", Name: "Java"}})
		registry.Load(map[string]scribe.Language{"go": {Key: "go", Name: "Go"}})

		Expect(registry.Resolve("java")).To(Equal("?"))
		Expect(registry.Resolve("go")).To(Equal("Go"))
		Expect(registry.Len()).To(Equal(1))
	})

	It("is not affected by later changes to the loaded map", func() {
		mapping := map[string]scribe.Language{"java": {Key: "java", Name: "Java"}}

		registry := scribe.NewLanguages()
		registry.Load(mapping)

		mapping["java"] = scribe.Language{Key: "java", Name: "Changed"}
		mapping["go"] = scribe.Language{Key: "go", Name: "Go"}
		delete(mapping, "java")

		Expect(registry.Resolve("java")).To(Equal("Java"))
		Expect(registry.Resolve("go")).To(Equal("?"))
		Expect(registry.Len()).To(Equal(1))
	})

	It("lists languages ordered by key", func() {
		registry := scribe.NewLanguages()
		registry.Load(map[string]scribe.Language{
			"py":   {Key: "py", Name: "Python"},
			"cs":   {Key: "cs", Name: "C#"},
			"java": {Key: "java", Name: "Java"},
		})

		Expect(registry.All()).To(Equal([]scribe.Language{
			{Key: "cs", Name: "C#"},
			{Key: "java", Name: "Java"},
			{Key: "py", Name: "Python"},
		}))
	})

	Describe("LoadLanguages", func() {
		It("builds the registry from the server list, last duplicate winning", func() {
			registry, err := scribe.LoadLanguages(context.Background(), languageList{languages: []types.Language{
				{Key: "java", Name: "Java"},
				{Key: "js", Name: "JavaScript"},
				{Key: "java", Name: "Java (legacy)"},
			}})
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Len()).To(Equal(2))
			Expect(registry.Resolve("java")).To(Equal("Java (legacy)"))
			Expect(registry.Resolve("js")).To(Equal("JavaScript"))
		})

		It("propagates listing failures", func() {
			_, err := scribe.LoadLanguages(context.Background(), languageList{
				err: errors.Join(scribe.ErrServiceUnavailable, errors.New("dial tcp: refused")),
			})
			Expect(err).To(MatchError(scribe.ErrServiceUnavailable))
		})
	})
})

var _ = Describe("ParseStatus", func() {
	DescribeTable("accepts both review states in any case",
		func(raw string, expected scribe.Status) {
			status, err := scribe.ParseStatus(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(expected))
		},
		Entry("upper", "TO_REVIEW", scribe.StatusToReview),
		Entry("lower", "to_review", scribe.StatusToReview),
		Entry("reviewed", "Reviewed", scribe.StatusReviewed),
		Entry("padded", " reviewed ", scribe.StatusReviewed),
	)

	It("rejects anything else", func() {
		_, err := scribe.ParseStatus("closed")
		Expect(err).To(MatchError(ContainSubstring("invalid hotspot status")))
	})
})
