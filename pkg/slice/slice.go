package slice

func ReverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func Contains[T comparable](s []T, value T) bool {
	for _, a := range s {
		if a == value {
			return true
		}
	}
	return false
}

// Return the elements of s without their first and last element
func Inner[T any](s []T) []T {
	if len(s) <= 2 {
		return nil
	}
	return s[1 : len(s)-1]
}
