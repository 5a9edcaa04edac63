package gesture

// Thresholds are compared exactly as written. LeftHard and RightHard are not
// mirror images of each other (s3 <= 0.2 vs s1 <= 0.2, s2 <= 0.3).

func isLight(t Triplet) bool {
	return t.S1 <= 0.3 && t.S2 <= 0.3 && t.S3 <= 0.3
}

func isHard(t Triplet) bool {
	return t.S1 >= 0.7 && t.S2 >= 0.7 && t.S3 >= 0.7
}

func isLeftLight(t Triplet) bool {
	return 0.1 <= t.S1 && t.S1 <= 0.3 && t.S2 <= 0.1 && t.S3 <= 0.1
}

func isLeftHard(t Triplet) bool {
	return t.S1 >= 0.7 && t.S2 <= 0.3 && t.S3 <= 0.2
}

func isRightLight(t Triplet) bool {
	return t.S1 <= 0.1 && t.S2 <= 0.1 && 0.1 <= t.S3 && t.S3 <= 0.3
}

func isRightHard(t Triplet) bool {
	return t.S1 <= 0.2 && t.S2 <= 0.3 && t.S3 >= 0.7
}

func isMiddle(t Triplet) bool {
	return t.S1 <= 0.2 && t.S2 >= 0.7 && t.S3 <= 0.2
}

func isIndeterminate(t Triplet) bool {
	return !(isLeftLight(t) ||
		isRightLight(t) ||
		isMiddle(t) ||
		isLeftHard(t) ||
		isRightHard(t) ||
		isHard(t) ||
		isLight(t))
}

// Matches reports whether t lies inside the geometric region of gesture l.
// It only confirms a label chosen by the caller, it never assigns one.
func (l Label) Matches(t Triplet) bool {
	switch l {
	case LightTouch:
		return isLight(t)
	case HardTouch:
		return isHard(t)
	case LeftLight:
		return isLeftLight(t)
	case LeftHard:
		return isLeftHard(t)
	case RightLight:
		return isRightLight(t)
	case RightHard:
		return isRightHard(t)
	case Middle:
		return isMiddle(t)
	case Indeterminate:
		return isIndeterminate(t)
	}
	return false
}

func Matches(l Label, t Triplet) bool {
	return l.Matches(t)
}
