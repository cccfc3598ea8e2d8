package main

import (
	"github.com/antonmedv/expr"

	"sheetEngine/contracts"
)

// Aggregate functions available inside formulas, in both spellings. Arguments
// are cell references or literals; anything non-numeric yields #VALUE!.
var mathFunctions = []expr.Option{
	expr.Function("min", calculateMin),
	expr.Function("MIN", calculateMin),
	expr.Function("max", calculateMax),
	expr.Function("MAX", calculateMax),
	expr.Function("sum", calculateSum),
	expr.Function("SUM", calculateSum),
	expr.Function("avg", calculateAvg),
	expr.Function("AVG", calculateAvg),
}

func calculateMin(args ...any) (any, error) {
	numbers, err := numericArguments(args)
	if err != nil {
		return nil, err
	}

	minValue := numbers[0]
	for _, number := range numbers[1:] {
		if number < minValue {
			minValue = number
		}
	}

	return minValue, nil
}

func calculateMax(args ...any) (any, error) {
	numbers, err := numericArguments(args)
	if err != nil {
		return nil, err
	}

	maxValue := numbers[0]
	for _, number := range numbers[1:] {
		if number > maxValue {
			maxValue = number
		}
	}

	return maxValue, nil
}

func calculateSum(args ...any) (any, error) {
	numbers, err := numericArguments(args)
	if err != nil {
		return nil, err
	}

	sum := 0.0
	for _, number := range numbers {
		sum += number
	}

	return sum, nil
}

func calculateAvg(args ...any) (any, error) {
	numbers, err := numericArguments(args)
	if err != nil {
		return nil, err
	}

	sum := 0.0
	for _, number := range numbers {
		sum += number
	}

	return sum / float64(len(numbers)), nil
}

func numericArguments(args []any) ([]float64, error) {
	if len(args) == 0 {
		return nil, contracts.NewFormulaError(contracts.FormulaErrorValue)
	}

	numbers := make([]float64, len(args))
	for index, arg := range args {
		number, ok := outputToNumber(arg)
		if !ok {
			return nil, contracts.NewFormulaError(contracts.FormulaErrorValue)
		}
		numbers[index] = number
	}

	return numbers, nil
}
