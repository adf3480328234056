package utils_test

import "time"

func monthOf(m int) time.Month { return time.Month(m) }
