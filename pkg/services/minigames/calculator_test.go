package minigames

import (
	"math/big"
	"testing"

	"github.com/naekun/naebot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	testCases := []struct {
		name      string
		a, b      int64
		op        Operator
		result    int64
		remainder int64
		text      string
	}{
		{name: "add", a: 7, b: 2, op: OpAdd, result: 9, text: "7 + 2 = 9"},
		{name: "subtract", a: 7, b: 12, op: OpSub, result: -5, text: "7 - 12 = -5"},
		{name: "multiply", a: -3, b: 4, op: OpMul, result: -12, text: "-3 × 4 = -12"},
		{name: "divide", a: 7, b: 2, op: OpDiv, result: 3, remainder: 1, text: "7 ÷ 2 = 3 あまり 1"},
		{name: "divide exact", a: 8, b: 2, op: OpDiv, result: 4, remainder: 0, text: "8 ÷ 2 = 4 あまり 0"},
		{name: "negative dividend floors", a: -7, b: 2, op: OpDiv, result: -4, remainder: 1, text: "-7 ÷ 2 = -4 あまり 1"},
		{name: "negative divisor floors", a: 7, b: -2, op: OpDiv, result: -4, remainder: -1, text: "7 ÷ -2 = -4 あまり -1"},
		{name: "both negative", a: -7, b: -2, op: OpDiv, result: 3, remainder: -1, text: "-7 ÷ -2 = 3 あまり -1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calc, err := Calculate(big.NewInt(tc.a), big.NewInt(tc.b), tc.op)
			require.NoError(t, err)

			assert.Equal(t, big.NewInt(tc.result).String(), calc.Result.String())
			if tc.op == OpDiv {
				assert.Equal(t, big.NewInt(tc.remainder).String(), calc.Remainder.String())
			} else {
				assert.Nil(t, calc.Remainder)
			}
			assert.Equal(t, tc.text, calc.String())
		})
	}
}

func TestCalculateDivisionIdentity(t *testing.T) {
	for a := int64(-9); a <= 9; a++ {
		for b := int64(-4); b <= 4; b++ {
			if b == 0 {
				continue
			}
			calc, err := Calculate(big.NewInt(a), big.NewInt(b), OpDiv)
			require.NoError(t, err)

			q, r := calc.Result.Int64(), calc.Remainder.Int64()
			assert.Equal(t, a, q*b+r, "%d ÷ %d", a, b)
			if r != 0 {
				assert.Equal(t, b > 0, r > 0, "remainder of %d ÷ %d takes the divisor's sign", a, b)
			}
		}
	}
}

func TestCalculateDivisionByZero(t *testing.T) {
	calc, err := Calculate(big.NewInt(7), big.NewInt(0), OpDiv)

	assert.Nil(t, calc)
	assert.True(t, types.IsBotError(err, types.ErrDivisionByZero))
	var botErr *types.BotError
	require.True(t, types.As(err, &botErr))
	assert.Equal(t, "0で割るのはできなえ！", botErr.Message)
}

func TestCalculateUnknownOperator(t *testing.T) {
	_, err := Calculate(big.NewInt(1), big.NewInt(1), Operator("^"))

	assert.True(t, types.IsBotError(err, types.ErrInvalidArgument))
}

func TestCalculateDoesNotOverflow(t *testing.T) {
	a := big.NewInt(1 << 62)
	calc, err := Calculate(a, a, OpMul)
	require.NoError(t, err)

	assert.Equal(t, "21267647932558653966460912964485513216", calc.Result.String())
}
