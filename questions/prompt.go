// questions/prompt.go
package questions

import "fmt"

// Difficulty describes, in the prompt's language, how hard a level should be.
func Difficulty(level int) string {
	switch {
	case level <= 3:
		return "Iniciante absoluto (A1). Foque em cumprimentos básicos, pronomes simples e vocabulário do dia a dia (cores, números, família)."
	case level <= 6:
		return "Básico/Intermediário (A2). Foque em tempos verbais simples (presente, passado), preposições e situações de viagem/compras."
	case level <= 9:
		return "Intermediário (B1/B2). Use Phrasal Verbs comuns, tempos perfeitos (Present Perfect) e expressões idiomáticas frequentes."
	default:
		return "Avançado (C1). Use vocabulário acadêmico ou profissional, expressões idiomáticas raras, nuances gramaticais sutis e estruturas complexas."
	}
}

// Prompt is the instruction sent to the model for level.
func Prompt(level int) string {
	return fmt.Sprintf(`Gere uma pergunta de múltipla escolha em Inglês desafiadora para o Nível %d.
Contexto de dificuldade: %s

REGRAS:
1. A pergunta e as opções de resposta devem estar em Inglês.
2. A 'explanation' (explicação do porquê a resposta está correta) e o 'hint' (dica) devem estar em PORTUGUÊS BRASILEIRO.
3. Certifique-se de que APENAS UMA resposta esteja correta.
4. O nível de dificuldade deve ser estritamente respeitado para criar uma curva de aprendizado real.`, level, Difficulty(level))
}

// Schema is the JSON schema the model's answer must follow.
func Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"correctIndex": map[string]any{"type": "integer"},
			"hint":         map[string]any{"type": "string"},
			"explanation":  map[string]any{"type": "string"},
		},
		"required":             []string{"question", "options", "correctIndex", "hint", "explanation"},
		"additionalProperties": false,
	}
}
