package minigames

import (
	"fmt"
	"math/big"

	"github.com/naekun/naebot/internal/types"
)

// Operator is a sansuu operator as shown to the user
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "×"
	OpDiv Operator = "÷"
)

// Operators lists the supported operators in menu order
var Operators = []Operator{OpAdd, OpSub, OpMul, OpDiv}

// Calculation is an evaluated sansuu expression
type Calculation struct {
	A, B      *big.Int
	Op        Operator
	Result    *big.Int
	Remainder *big.Int // set for OpDiv only
}

// String renders the calculation the way the bot replies with it
func (c *Calculation) String() string {
	if c.Op == OpDiv {
		return fmt.Sprintf("%s ÷ %s = %s あまり %s", c.A, c.B, c.Result, c.Remainder)
	}
	return fmt.Sprintf("%s %s %s = %s", c.A, c.Op, c.B, c.Result)
}

// Calculate evaluates a op b on arbitrary precision integers. Division
// rounds the quotient toward negative infinity; the remainder takes the sign
// of the divisor, so a == q*b + r always holds.
func Calculate(a, b *big.Int, op Operator) (*Calculation, error) {
	c := &Calculation{A: a, B: b, Op: op, Result: new(big.Int)}

	switch op {
	case OpAdd:
		c.Result.Add(a, b)
	case OpSub:
		c.Result.Sub(a, b)
	case OpMul:
		c.Result.Mul(a, b)
	case OpDiv:
		if b.Sign() == 0 {
			return nil, types.NewBotError(types.ErrDivisionByZero, "0で割るのはできなえ！")
		}
		c.Result, c.Remainder = floorDivMod(a, b)
	default:
		return nil, types.NewBotError(types.ErrInvalidArgument, "不正な演算子なえ！")
	}

	return c, nil
}

func floorDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		q.Sub(q, big.NewInt(1))
		r.Add(r, b)
	}
	return q, r
}
