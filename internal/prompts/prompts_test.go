package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xaenox/context-engine/internal/intent"
)

func TestSelectMapsEveryIntent(t *testing.T) {
	cases := map[intent.Intent]TemplateID{
		intent.Scheduling: TemplateScheduling,
		intent.Messaging:  TemplateMessaging,
		intent.Notes:      TemplateNotes,
		intent.Places:     TemplatePlaces,
		intent.Navigation: TemplateNavigation,
		intent.Weather:    TemplateWeather,
		intent.Finance:    TemplateFinance,
		intent.Multi:      TemplateComposite,
		intent.General:    TemplateGeneral,
	}
	for in, want := range cases {
		assert.Equal(t, want, Select(intent.Context{PrimaryIntent: in}))
	}
}

func TestSelectUnknownFallsBack(t *testing.T) {
	assert.Equal(t, TemplateGeneral, Select(intent.Context{PrimaryIntent: intent.Intent("bogus")}))
}

func TestTextNonEmptyForAllTemplates(t *testing.T) {
	for id := range templates {
		assert.NotEmpty(t, Text(id))
	}
	assert.Equal(t, templates[TemplateGeneral], Text(TemplateID("bogus")))
}

func TestCompositeText(t *testing.T) {
	text := CompositeText([]intent.Intent{intent.Places, intent.Finance})

	parts := strings.Split(text, "\n\n")
	assert.Len(t, parts, 2)
	assert.Equal(t, templates[TemplatePlaces], parts[0])
	assert.Equal(t, templates[TemplateFinance], parts[1])
}

func TestCompositeTextEmptyFallsBack(t *testing.T) {
	assert.Equal(t, templates[TemplateGeneral], CompositeText(nil))
}
