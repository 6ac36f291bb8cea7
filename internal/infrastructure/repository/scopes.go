package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE wildcards in user supplied text
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SearchScope returns a GORM scope matching term as a case-insensitive
// substring of any of the given columns. An empty term matches everything.
// LOWER(..) LIKE is used instead of ILIKE so the scope works on SQLite too.
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// PrefixScope matches rows whose column starts with prefix. Case is ignored
// when fold is set.
func PrefixScope(column, prefix string, fold bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if fold {
			return db.Where("LOWER("+column+`) LIKE ? ESCAPE '\'`, escapeLike(strings.ToLower(prefix))+"%")
		}
		return db.Where(column+` LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%")
	}
}

// byPosition orders preloaded child rows the way they were submitted
func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// withDeleted preloads a relation even if it was soft deleted
func withDeleted(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
