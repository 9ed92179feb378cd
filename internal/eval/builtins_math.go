package eval

import (
	"math"
	"sort"
)

func registerMathBuiltins(m map[string]Value) {
	m["pi"] = NumberValue{Val: math.Pi}
	m["e"] = NumberValue{Val: math.E}
	m["tau"] = NumberValue{Val: 2 * math.Pi}
	m["inf"] = NumberValue{Val: math.Inf(1)}
	m["nan"] = NumberValue{Val: math.NaN()}

	m["min"] = builtin("min", func(args []Value) (Value, error) {
		if err := wantAtLeast("min", args, 1); err != nil {
			return nil, err
		}
		nums, err := numberArgs("min", args)
		if err != nil {
			return nil, err
		}
		best := nums[0]
		for _, n := range nums[1:] {
			if n < best {
				best = n
			}
		}
		return NumberValue{Val: best}, nil
	})

	m["max"] = builtin("max", func(args []Value) (Value, error) {
		if err := wantAtLeast("max", args, 1); err != nil {
			return nil, err
		}
		nums, err := numberArgs("max", args)
		if err != nil {
			return nil, err
		}
		best := nums[0]
		for _, n := range nums[1:] {
			if n > best {
				best = n
			}
		}
		return NumberValue{Val: best}, nil
	})

	m["log"] = builtin("log", func(args []Value) (Value, error) {
		if err := wantArgRange("log", args, 1, 2); err != nil {
			return nil, err
		}
		x, err := numberArg("log", args, 0)
		if err != nil {
			return nil, err
		}
		if x <= 0 {
			return nil, arithmeticErrorf("math domain error: log of %g", x)
		}
		if len(args) == 2 {
			base, err := numberArg("log", args, 1)
			if err != nil {
				return nil, err
			}
			if base <= 0 || base == 1 {
				return nil, arithmeticErrorf("math domain error: log base %g", base)
			}
			return NumberValue{Val: math.Log(x) / math.Log(base)}, nil
		}
		return NumberValue{Val: math.Log(x)}, nil
	})

	m["log1p"] = unaryMath("log1p", func(x float64) (float64, error) {
		if x <= -1 {
			return 0, arithmeticErrorf("math domain error: log1p of %g", x)
		}
		return math.Log1p(x), nil
	})
	m["log2"] = unaryMath("log2", func(x float64) (float64, error) {
		if x <= 0 {
			return 0, arithmeticErrorf("math domain error: log2 of %g", x)
		}
		return math.Log2(x), nil
	})
	m["log10"] = unaryMath("log10", func(x float64) (float64, error) {
		if x <= 0 {
			return 0, arithmeticErrorf("math domain error: log10 of %g", x)
		}
		return math.Log10(x), nil
	})
	m["exp"] = unaryMath("exp", func(x float64) (float64, error) { return math.Exp(x), nil })
	m["sqrt"] = unaryMath("sqrt", func(x float64) (float64, error) {
		if x < 0 {
			return 0, arithmeticErrorf("math domain error: sqrt of %g", x)
		}
		return math.Sqrt(x), nil
	})
	m["cos"] = unaryMath("cos", func(x float64) (float64, error) { return math.Cos(x), nil })
	m["sin"] = unaryMath("sin", func(x float64) (float64, error) { return math.Sin(x), nil })
	m["tan"] = unaryMath("tan", func(x float64) (float64, error) { return math.Tan(x), nil })
	m["acos"] = unaryMath("acos", func(x float64) (float64, error) {
		if x < -1 || x > 1 {
			return 0, arithmeticErrorf("math domain error: acos of %g", x)
		}
		return math.Acos(x), nil
	})
	m["asin"] = unaryMath("asin", func(x float64) (float64, error) {
		if x < -1 || x > 1 {
			return 0, arithmeticErrorf("math domain error: asin of %g", x)
		}
		return math.Asin(x), nil
	})
	m["atan"] = unaryMath("atan", func(x float64) (float64, error) { return math.Atan(x), nil })
	m["degrees"] = unaryMath("degrees", func(x float64) (float64, error) { return x * 180 / math.Pi, nil })
	m["radians"] = unaryMath("radians", func(x float64) (float64, error) { return x * math.Pi / 180, nil })

	m["fsum"] = builtin("fsum", func(args []Value) (Value, error) {
		nums, err := numberArgs("fsum", args)
		if err != nil {
			return nil, err
		}
		sum := 0.0
		for _, n := range nums {
			sum += n
		}
		return NumberValue{Val: sum}, nil
	})

	m["gcd"] = builtin("gcd", func(args []Value) (Value, error) {
		if err := wantAtLeast("gcd", args, 1); err != nil {
			return nil, err
		}
		g := 0
		for i := range args {
			n, err := intArg("gcd", args, i)
			if err != nil {
				return nil, err
			}
			g = gcd(g, abs(n))
		}
		return NumberValue{Val: float64(g)}, nil
	})

	m["isqrt"] = builtin("isqrt", func(args []Value) (Value, error) {
		if err := wantArgs("isqrt", args, 1); err != nil {
			return nil, err
		}
		n, err := intArg("isqrt", args, 0)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, arithmeticErrorf("isqrt of negative number")
		}
		r := int(math.Sqrt(float64(n)))
		for r*r > n {
			r--
		}
		for (r+1)*(r+1) <= n {
			r++
		}
		return NumberValue{Val: float64(r)}, nil
	})

	m["mean"] = statBuiltin("mean", mean)
	m["fmean"] = statBuiltin("fmean", mean)
	m["geometric_mean"] = statBuiltin("geometric_mean", func(nums []float64) (float64, error) {
		sum := 0.0
		for _, n := range nums {
			if n <= 0 {
				return 0, arithmeticErrorf("geometric mean requires positive values")
			}
			sum += math.Log(n)
		}
		return math.Exp(sum / float64(len(nums))), nil
	})
	m["median"] = statBuiltin("median", func(nums []float64) (float64, error) {
		sorted := append([]float64(nil), nums...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid], nil
		}
		return (sorted[mid-1] + sorted[mid]) / 2, nil
	})
	m["stdev"] = statBuiltin("stdev", func(nums []float64) (float64, error) {
		v, err := sampleVariance(nums)
		if err != nil {
			return 0, err
		}
		return math.Sqrt(v), nil
	})
	m["variance"] = statBuiltin("variance", sampleVariance)
}

func unaryMath(name string, fn func(float64) (float64, error)) Value {
	return builtin(name, func(args []Value) (Value, error) {
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		x, err := numberArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		r, err := fn(x)
		if err != nil {
			return nil, err
		}
		return NumberValue{Val: r}, nil
	})
}

func statBuiltin(name string, fn func([]float64) (float64, error)) Value {
	return builtin(name, func(args []Value) (Value, error) {
		if err := wantAtLeast(name, args, 1); err != nil {
			return nil, err
		}
		nums, err := numberArgs(name, args)
		if err != nil {
			return nil, err
		}
		r, err := fn(nums)
		if err != nil {
			return nil, err
		}
		return NumberValue{Val: r}, nil
	})
}

func mean(nums []float64) (float64, error) {
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums)), nil
}

// sampleVariance needs at least two data points.
func sampleVariance(nums []float64) (float64, error) {
	if len(nums) < 2 {
		return 0, arithmeticErrorf("variance requires at least two data points")
	}
	m, _ := mean(nums)
	sum := 0.0
	for _, n := range nums {
		d := n - m
		sum += d * d
	}
	return sum / float64(len(nums)-1), nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
