package strategy

import (
	"fmt"
	"strings"

	"github.com/eurenemendes/ecofeira-backend/internal/comparison"
)

// BuildPrompt renders the comparison into a single-turn prompt asking for a
// short shopping strategy in pt-BR. The model only narrates numbers already
// computed by the estimator; it never produces new prices.
func BuildPrompt(dto comparison.ComparisonDTO) string {
	var b strings.Builder
	b.WriteString("Você é um assistente de economia doméstica do EcoFeira.\n")
	b.WriteString("Com base na comparação de preços abaixo, escreva uma estratégia de compra curta (no máximo 3 frases), amigável e em português.\n")
	b.WriteString("Não invente preços nem mercados; use apenas os dados fornecidos.\n\n")

	fmt.Fprintf(&b, "Itens na lista: %d\n", dto.ItemCount)
	fmt.Fprintf(&b, "Economia estimada entre a melhor e a pior opção: R$ %s\n\n", dto.Savings.StringFixed(2))

	for i, opt := range dto.Options {
		marker := ""
		if opt.IsBestOption {
			marker = " (melhor opção)"
		}
		fmt.Fprintf(&b, "%d. %s%s: total estimado R$ %s, %d de %d itens com preço confirmado\n",
			i+1, opt.StoreName, marker, opt.TotalEstimated.StringFixed(2), opt.ConfirmedCount, opt.ItemCount)
	}

	return b.String()
}

// FallbackNarrative is used whenever the model is unavailable. It states the
// same facts the prompt would have narrated.
func FallbackNarrative(dto comparison.ComparisonDTO) string {
	if len(dto.Options) == 0 {
		return "Sua lista ainda está vazia. Adicione produtos para ver onde sua compra sai mais barato."
	}

	best := dto.Options[0]
	if len(dto.Options) == 1 {
		return fmt.Sprintf("Encontramos preços para sua lista no %s, com total estimado de R$ %s.",
			best.StoreName, best.TotalEstimated.StringFixed(2))
	}

	return fmt.Sprintf("Comprando tudo no %s, sua lista sai por cerca de R$ %s — uma economia de até R$ %s em relação à opção mais cara.",
		best.StoreName, best.TotalEstimated.StringFixed(2), dto.Savings.StringFixed(2))
}
