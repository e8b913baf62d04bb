package httpapi

import (
	"context"
	"math/rand/v2"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

// quotes served by /api/quotes, kept in the frontend's language.
var quotes = []string{
	"O sucesso é a soma de pequenos esforços repetidos dia após dia.",
	"A persistência é o caminho do êxito.",
	"Grandes realizações requerem grandes ambições.",
	"O único impossível é aquilo que não tentamos realizar.",
	"A disciplina é a ponte entre objetivos e conquistas.",
	"Sua carreira jamais irá acordar de manhã para dizer que não a ama mais. - Lady Gaga",
	"O céu é o limite... para algumas pessoas. Mire mais alto. Nada é impossível. - Demi Lovato",
}

func (s *Server) handleCEP(ctx context.Context, c *app.RequestContext) {
	address, err := s.addresses.Lookup(ctx, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.H{"success": true, "data": address})
}

func (s *Server) handleQuotes(ctx context.Context, c *app.RequestContext) {
	c.JSON(http.StatusOK, utils.H{
		"success": true,
		"quote":   quotes[rand.IntN(len(quotes))],
	})
}
