package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// GravatarURL builds the Gravatar image URL for an email address.
// Gravatar's scheme is an MD5 digest of the lowercased, trimmed address;
// no network call is involved, so the lookup cannot fail.
func GravatarURL(email string) string {
	digest := md5.Sum([]byte(SanitizeEmail(email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon", hex.EncodeToString(digest[:]))
}
