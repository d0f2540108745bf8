// questions/bank.go
package questions

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"show-do-ingles/models"
)

// bank holds the built-in questions, one slice per difficulty band.
var bank = [4][]models.Question{
	{ // A1, levels 1-3
		{
			Question:     "How do you say \"bom dia\" in English?",
			Options:      []string{"Good night", "Good morning", "Good afternoon", "Goodbye"},
			CorrectIndex: 1,
			Hint:         "Usamos essa expressão logo cedo.",
			Explanation:  "\"Good morning\" é o cumprimento usado pela manhã.",
		},
		{
			Question:     "Choose the correct pronoun: ___ is my sister.",
			Options:      []string{"He", "They", "She", "We"},
			CorrectIndex: 2,
			Hint:         "Irmã é uma pessoa do sexo feminino.",
			Explanation:  "\"She\" é o pronome para uma mulher no singular.",
		},
		{
			Question:     "What color is the sky on a clear day?",
			Options:      []string{"Blue", "Green", "Red", "Brown"},
			CorrectIndex: 0,
			Hint:         "É a mesma cor do mar em muitas fotos.",
			Explanation:  "\"Blue\" significa azul.",
		},
	},
	{ // A2, levels 4-6
		{
			Question:     "Yesterday I ___ to the supermarket.",
			Options:      []string{"go", "goes", "went", "gone"},
			CorrectIndex: 2,
			Hint:         "A frase está no passado simples.",
			Explanation:  "\"Went\" é o passado simples irregular de \"go\".",
		},
		{
			Question:     "The keys are ___ the table.",
			Options:      []string{"on", "at", "to", "of"},
			CorrectIndex: 0,
			Hint:         "As chaves estão em cima da mesa.",
			Explanation:  "\"On\" indica algo apoiado sobre uma superfície.",
		},
		{
			Question:     "How much ___ this shirt cost?",
			Options:      []string{"do", "does", "is", "are"},
			CorrectIndex: 1,
			Hint:         "O sujeito é \"this shirt\", terceira pessoa do singular.",
			Explanation:  "Perguntas no presente simples com he/she/it usam \"does\".",
		},
	},
	{ // B1/B2, levels 7-9
		{
			Question:     "I have ___ here since 2019.",
			Options:      []string{"live", "lived", "living", "lives"},
			CorrectIndex: 1,
			Hint:         "Present Perfect usa have + particípio.",
			Explanation:  "\"I have lived\" expressa uma ação que começou no passado e continua.",
		},
		{
			Question:     "Please ___ the lights when you leave.",
			Options:      []string{"turn off", "turn up", "turn into", "turn over"},
			CorrectIndex: 0,
			Hint:         "É o contrário de ligar.",
			Explanation:  "\"Turn off\" significa desligar.",
		},
		{
			Question:     "\"It's raining cats and dogs\" means:",
			Options:      []string{"Animals are outside", "It's raining heavily", "It's a little cloudy", "The weather is nice"},
			CorrectIndex: 1,
			Hint:         "É uma expressão idiomática sobre chuva.",
			Explanation:  "A expressão significa que está chovendo muito forte.",
		},
	},
	{ // C1, levels 10-12
		{
			Question:     "Hardly ___ the room when the phone rang.",
			Options:      []string{"I had entered", "had I entered", "I entered", "did I entered"},
			CorrectIndex: 1,
			Hint:         "Advérbios negativos no início pedem inversão.",
			Explanation:  "Depois de \"Hardly\" no início da frase, o auxiliar vem antes do sujeito.",
		},
		{
			Question:     "Which word best completes: \"The findings ___ the hypothesis.\"",
			Options:      []string{"corroborate", "collaborate", "corrode", "correlate with it"},
			CorrectIndex: 0,
			Hint:         "Significa confirmar ou dar suporte.",
			Explanation:  "\"Corroborate\" significa confirmar com evidências.",
		},
		{
			Question:     "\"To bite the bullet\" means to:",
			Options:      []string{"Eat quickly", "Face something unpleasant bravely", "Start a fight", "Avoid a problem"},
			CorrectIndex: 1,
			Hint:         "Tem a ver com coragem diante de algo difícil.",
			Explanation:  "A expressão significa enfrentar uma situação difícil com coragem.",
		},
	},
}

// Bank serves questions from a fixed list, chosen at random within the
// difficulty band of the level. A bank never hands out the same question of a
// band twice in a row, so a skip always brings a different one. Give each game
// session its own bank.
type Bank struct {
	mu   sync.Mutex
	rnd  *rand.Rand
	last [len(bank)]int
}

// NewBank returns a bank seeded with seed. A zero seed uses the clock.
func NewBank(seed int64) *Bank {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b := &Bank{rnd: rand.New(rand.NewSource(seed))}
	for i := range b.last {
		b.last[i] = -1
	}
	return b
}

// Generate returns a copy of a bank question for level.
func (b *Bank) Generate(ctx context.Context, level int) (models.Question, error) {
	if err := ctx.Err(); err != nil {
		return models.Question{}, err
	}
	bandIdx := bandFor(level)
	band := bank[bandIdx]

	b.mu.Lock()
	idx := b.rnd.Intn(len(band))
	if prev := b.last[bandIdx]; prev >= 0 && len(band) > 1 {
		// Draw from the other questions by skipping over prev.
		idx = b.rnd.Intn(len(band) - 1)
		if idx >= prev {
			idx++
		}
	}
	b.last[bandIdx] = idx
	b.mu.Unlock()

	q := band[idx]
	q.Options = append([]string(nil), q.Options...)
	return q, nil
}

func bandFor(level int) int {
	switch {
	case level <= 3:
		return 0
	case level <= 6:
		return 1
	case level <= 9:
		return 2
	default:
		return 3
	}
}
