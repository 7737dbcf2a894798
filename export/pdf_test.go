package export

import (
	"testing"

	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/scoring"
	"github.com/venchfc/litmusEU/service"

	"github.com/stretchr/testify/assert"
)

func testView() *service.ResultsView {
	return &service.ResultsView{
		Event:       &repository.Event{Id: 3, Name: "Main Event"},
		Competition: &repository.Competition{Id: 7, Name: "Vocal Solo", Slug: "vocal-solo"},
		Standings: []*scoring.Standing{
			{Contestant: &repository.Contestant{Id: 1, Name: "contestant1"}, Rank: 1, Total: 91.5},
			{Contestant: &repository.Contestant{Id: 2, Name: "contestant2"}, Rank: 2, Total: 84.25},
		},
	}
}

func TestRenderResultsPDF(t *testing.T) {
	document, err := RenderResultsPDF(testView())
	assert.NoError(t, err)
	assert.True(t, len(document) > 0)
	assert.Equal(t, "%PDF", string(document[:4]))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "results_vocal-solo_3.pdf", Filename(testView()))
}
