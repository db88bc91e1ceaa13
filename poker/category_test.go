package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		hand     string
		expected HoleCategory
	}{
		// Premium hands
		{"Pocket Aces", "As Ah", CategoryPremium},
		{"Pocket Jacks", "Jh Jd", CategoryPremium},
		{"Ace King offsuit", "Ac Kh", CategoryPremium},
		{"King Ace reversed", "Kh Ac", CategoryPremium},

		// Strong hands
		{"Pocket Tens", "Tc Th", CategoryStrong},
		{"Ace Queen offsuit", "Ac Qh", CategoryStrong},
		{"Ace Jack suited", "As Js", CategoryStrong},

		// Medium hands
		{"Pocket Sevens", "7h 7c", CategoryMedium},
		{"King Queen suited", "Ks Qs", CategoryMedium},
		{"Queen Ten suited", "Qd Td", CategoryMedium},

		// Weak hands
		{"Pocket Sixes", "6c 6h", CategoryWeak},
		{"Pocket Twos", "2c 2h", CategoryWeak},
		{"Suited connectors 76s", "7h 6h", CategoryWeak},
		{"Suited gapper 53s", "5d 3d", CategoryWeak},

		// Trash hands
		{"Seven Two offsuit", "7c 2h", CategoryTrash},
		{"King Queen offsuit", "Kc Qh", CategoryTrash},
		{"Nine Five suited", "9s 5s", CategoryTrash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Category(MustParseTwo(tt.hand)))
		})
	}

	assert.Equal(t, CategoryUnknown, Category(BlankTwo))
}

func TestShorthand(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "QQ", Shorthand(MustParseTwo("Qh Qd")))
	assert.Equal(t, "AKs", Shorthand(MustParseTwo("Ks As")))
	assert.Equal(t, "T9o", Shorthand(MustParseTwo("9c Th")))
	assert.Equal(t, "--", Shorthand(BlankTwo))
}
