package bridge

import (
	"fmt"
	"strconv"
)

func helloHandler(args []string) (string, error) {
	return fmt.Sprintf("Hello from Go! Args: %v", args), nil
}

func addHandler(args []string) (string, error) {
	if len(args) != 2 {
		return "", &ArgCountError{Function: "add", Expected: 2, Got: len(args)}
	}

	parseNumber := func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, &ParseError{Message: fmt.Sprintf("Failed to parse '%s' as number", s)}
		}
		return n, nil
	}

	a, err := parseNumber(args[0])
	if err != nil {
		return "", err
	}
	b, err := parseNumber(args[1])
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Sum: %d", a+b), nil
}
