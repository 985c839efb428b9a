package cycle

// IndexOf returns the first index of val in s, or -1 if not found.
// Time Complexity: O(n).
func IndexOf(s []int, val int) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}

	return -1
}

// MinimalRotation implements Booth's algorithm and returns a new slice holding the
// lexicographically minimal rotation of s. For a cycle of distinct ids this is the
// rotation starting at the smallest id.
// Time Complexity: O(n).
func MinimalRotation(s []int) []int {
	n := len(s)
	if n == 0 {
		return []int{}
	}
	doubled := make([]int, 0, 2*n)
	doubled = append(append(doubled, s...), s...)

	f := make([]int, 2*n) // failure links
	for i := range f {
		f[i] = -1
	}
	k := 0 // start of the best rotation so far
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] { // i == -1 here
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}

	res := make([]int, n)
	copy(res, doubled[k:k+n])

	return res
}
