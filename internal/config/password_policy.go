// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PasswordPolicy defines requirements for password strength applied at
// registration and password change.
type PasswordPolicy struct {
	// MinLength is the minimum password length.
	MinLength int

	// RequireUppercase requires at least one uppercase letter.
	RequireUppercase bool

	// RequireLowercase requires at least one lowercase letter.
	RequireLowercase bool

	// RequireDigit requires at least one digit.
	RequireDigit bool

	// RequireSpecial requires at least one special character.
	RequireSpecial bool

	// MaxConsecutiveRepeats is the maximum allowed consecutive repeated
	// characters (0 = disabled).
	MaxConsecutiveRepeats int

	// ForbidCommonPasswords blocks common/breached passwords.
	ForbidCommonPasswords bool

	// ForbidEmailSimilarity prevents passwords too similar to the
	// account email's local part.
	ForbidEmailSimilarity bool
}

// DefaultPasswordPolicy returns the policy applied to member accounts:
// at least 8 characters spanning all four character classes.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:             8,
		RequireUppercase:      true,
		RequireLowercase:      true,
		RequireDigit:          true,
		RequireSpecial:        true,
		MaxConsecutiveRepeats: 4,
		ForbidCommonPasswords: true,
		ForbidEmailSimilarity: true,
	}
}

// AdminPasswordPolicy returns the stricter policy applied to admin
// accounts.
func AdminPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:             12,
		RequireUppercase:      true,
		RequireLowercase:      true,
		RequireDigit:          true,
		RequireSpecial:        true,
		MaxConsecutiveRepeats: 3,
		ForbidCommonPasswords: true,
		ForbidEmailSimilarity: true,
	}
}

// PasswordValidationResult contains details about password validation.
type PasswordValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Strength PasswordStrength
}

// PasswordStrength indicates the overall password strength.
type PasswordStrength int

const (
	PasswordStrengthWeak PasswordStrength = iota
	PasswordStrengthFair
	PasswordStrengthGood
	PasswordStrengthStrong
	PasswordStrengthExcellent
)

// String returns the string representation of password strength.
func (s PasswordStrength) String() string {
	switch s {
	case PasswordStrengthWeak:
		return "weak"
	case PasswordStrengthFair:
		return "fair"
	case PasswordStrengthGood:
		return "good"
	case PasswordStrengthStrong:
		return "strong"
	case PasswordStrengthExcellent:
		return "excellent"
	default:
		return "unknown"
	}
}

// charClasses holds the results of character class analysis.
type charClasses struct {
	hasUpper   bool
	hasLower   bool
	hasDigit   bool
	hasSpecial bool
}

// analyzeCharClasses examines a password and returns which character
// classes are present.
func analyzeCharClasses(password string) charClasses {
	var cc charClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			cc.hasUpper = true
		case unicode.IsLower(r):
			cc.hasLower = true
		case unicode.IsDigit(r):
			cc.hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			cc.hasSpecial = true
		}
	}
	return cc
}

// maxConsecutiveRepeats returns the maximum number of consecutive
// repeated characters.
func maxConsecutiveRepeats(password string) int {
	if len(password) == 0 {
		return 0
	}
	maxRepeats := 1
	currentRepeats := 1
	var lastRune rune
	for i, r := range password {
		if i > 0 && r == lastRune {
			currentRepeats++
			if currentRepeats > maxRepeats {
				maxRepeats = currentRepeats
			}
		} else {
			currentRepeats = 1
		}
		lastRune = r
	}
	return maxRepeats
}

// Validate checks if a password meets the policy requirements.
// Returns a detailed result with all errors and warnings. email may be
// empty when no account context exists.
func (p PasswordPolicy) Validate(password string, email string) PasswordValidationResult {
	result := PasswordValidationResult{
		Valid:  true,
		Errors: make([]string, 0),
	}

	if len(password) < p.MinLength {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("password must be at least %d characters (got %d)", p.MinLength, len(password)))
	}

	cc := analyzeCharClasses(password)
	p.validateCharClasses(&result, cc)

	if p.MaxConsecutiveRepeats > 0 && maxConsecutiveRepeats(password) > p.MaxConsecutiveRepeats {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("password cannot have more than %d consecutive repeated characters", p.MaxConsecutiveRepeats))
	}

	if p.ForbidCommonPasswords && isCommonPassword(password) {
		result.Valid = false
		result.Errors = append(result.Errors, "password is too common and easily guessable")
	}

	if p.ForbidEmailSimilarity && email != "" && isSimilarToEmail(password, email) {
		result.Valid = false
		result.Errors = append(result.Errors, "password is too similar to email address")
	}

	result.Strength = calculatePasswordStrength(password, cc)

	if result.Valid && result.Strength < PasswordStrengthGood {
		result.Warnings = append(result.Warnings,
			"consider using a stronger password with more character variety")
	}

	return result
}

// validateCharClasses checks character class requirements and adds
// errors to result.
func (p PasswordPolicy) validateCharClasses(result *PasswordValidationResult, cc charClasses) {
	if p.RequireUppercase && !cc.hasUpper {
		result.Valid = false
		result.Errors = append(result.Errors, "password must contain at least one uppercase letter")
	}
	if p.RequireLowercase && !cc.hasLower {
		result.Valid = false
		result.Errors = append(result.Errors, "password must contain at least one lowercase letter")
	}
	if p.RequireDigit && !cc.hasDigit {
		result.Valid = false
		result.Errors = append(result.Errors, "password must contain at least one digit")
	}
	if p.RequireSpecial && !cc.hasSpecial {
		result.Valid = false
		result.Errors = append(result.Errors, "password must contain at least one special character (!@#$%^&*...)")
	}
}

// ValidateWithError is a convenience method that returns an error if
// validation fails.
func (p PasswordPolicy) ValidateWithError(password string, email string) error {
	result := p.Validate(password, email)
	if !result.Valid {
		return errors.New(strings.Join(result.Errors, "; "))
	}
	return nil
}

// calculatePasswordStrength estimates password strength from length,
// character variety, and known weak patterns.
func calculatePasswordStrength(password string, cc charClasses) PasswordStrength {
	score := 0

	length := len(password)
	switch {
	case length >= 20:
		score += 4
	case length >= 16:
		score += 3
	case length >= 12:
		score += 2
	case length >= 8:
		score++
	}

	charTypes := 0
	if cc.hasUpper {
		charTypes++
	}
	if cc.hasLower {
		charTypes++
	}
	if cc.hasDigit {
		charTypes++
	}
	if cc.hasSpecial {
		charTypes++
	}
	score += charTypes

	if hasSequentialChars(password) {
		score--
	}
	if hasKeyboardPattern(password) {
		score--
	}

	switch {
	case score >= 8:
		return PasswordStrengthExcellent
	case score >= 6:
		return PasswordStrengthStrong
	case score >= 4:
		return PasswordStrengthGood
	case score >= 2:
		return PasswordStrengthFair
	default:
		return PasswordStrengthWeak
	}
}

// isCommonPassword checks if the password is in a list of common
// passwords. The list covers top breached passwords plus obvious
// domain-specific choices.
func isCommonPassword(password string) bool {
	lower := strings.ToLower(password)
	commonPasswords := map[string]bool{
		"123456":        true,
		"password":      true,
		"123456789":     true,
		"12345678":      true,
		"12345":         true,
		"1234567":       true,
		"1234567890":    true,
		"qwerty":        true,
		"abc123":        true,
		"password1":     true,
		"password123":   true,
		"password1!":    true,
		"password!":     true,
		"p@ssw0rd":      true,
		"p@ssword":      true,
		"pa55word":      true,
		"passw0rd":      true,
		"passw0rd!":     true,
		"admin":         true,
		"admin123":      true,
		"administrator": true,
		"letmein":       true,
		"letmein123":    true,
		"welcome":       true,
		"welcome1":      true,
		"welcome123":    true,
		"monkey":        true,
		"dragon":        true,
		"master":        true,
		"login":         true,
		"princess":      true,
		"qwerty123":     true,
		"qwertyuiop":    true,
		"asdfghjkl":     true,
		"zxcvbnm":       true,
		"1qaz2wsx":      true,
		"qazwsx":        true,
		"abcd1234":      true,
		"1q2w3e4r":      true,
		"987654321":     true,
		"iloveyou":      true,
		"sunshine":      true,
		"trustno1":      true,
		"111111":        true,
		"000000":        true,
		"654321":        true,
		"123321":        true,
		"123123":        true,
		"112233":        true,
		"aaaaaa":        true,
		"changeme":      true,
		"default":       true,
		"test":          true,
		"test123":       true,
		"testing":       true,
		"testing123":    true,
		"guest":         true,
		"root":          true,
		"secret":        true,
		"villarank":     true,
		"vacation":      true,
		"vacation1":     true,
		"rental":        true,
		"rentals":       true,
		"travel":        true,
		"travel123":     true,
		"booking":       true,
		"holiday":       true,
		"beach":         true,
		"beachhouse":    true,
		"summer":        true,
		"summer123":     true,
	}
	return commonPasswords[lower]
}

// isSimilarToEmail checks if the password is too similar to the email
// address local part.
func isSimilarToEmail(password, email string) bool {
	lowerPass := strings.ToLower(password)
	local := strings.ToLower(email)
	if at := strings.IndexByte(local, '@'); at > 0 {
		local = local[:at]
	}
	if len(local) < 3 {
		return false
	}

	// Direct match or substring.
	if strings.Contains(lowerPass, local) || strings.Contains(local, lowerPass) {
		return true
	}

	// Reverse of the local part.
	reversed := reverseString(local)
	if strings.Contains(lowerPass, reversed) {
		return true
	}

	// Local part with common substitutions.
	substitutions := map[rune]rune{
		'a': '@', 'e': '3', 'i': '1', 'o': '0', 's': '$', 't': '7',
	}
	substituted := strings.Map(func(r rune) rune {
		if sub, ok := substitutions[r]; ok {
			return sub
		}
		return r
	}, local)
	return strings.Contains(lowerPass, substituted)
}

// hasSequentialChars checks for sequential character patterns (abc,
// 123, cba).
func hasSequentialChars(password string) bool {
	if len(password) < 3 {
		return false
	}

	runes := []rune(strings.ToLower(password))
	sequenceCount := 0

	for i := 1; i < len(runes); i++ {
		diff := int(runes[i]) - int(runes[i-1])
		if diff == 1 || diff == -1 {
			sequenceCount++
			// sequenceCount >= 2 means 3+ chars in sequence ("abc" = 2 diffs).
			if sequenceCount >= 2 {
				return true
			}
		} else {
			sequenceCount = 0
		}
	}

	return false
}

// hasKeyboardPattern checks for common keyboard patterns.
func hasKeyboardPattern(password string) bool {
	lower := strings.ToLower(password)
	patterns := []string{
		"qwerty", "asdf", "zxcv", "qazwsx", "1qaz", "2wsx",
		"!qaz", "@wsx", "qweasd", "asdzxc",
	}
	for _, pattern := range patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// reverseString reverses a string.
func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
