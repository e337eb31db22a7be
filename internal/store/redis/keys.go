package redis

const (
	// KeyPrefixLink is the prefix for link keys
	KeyPrefixLink = "navs:link:"
	// KeyPrefixGroup is the prefix for group keys
	KeyPrefixGroup = "navs:group:"
	// KeyAllLinks is the key for the set of all link names
	KeyAllLinks = "navs:links:all"
	// KeyAllGroups is the key for the set of all group names
	KeyAllGroups = "navs:groups:all"
)

// LinkKey returns the Redis key for a link by name
func LinkKey(name string) string {
	return KeyPrefixLink + name
}

// GroupKey returns the Redis key for a group by name
func GroupKey(name string) string {
	return KeyPrefixGroup + name
}

// AllLinksKey returns the key for the set of all link names
func AllLinksKey() string {
	return KeyAllLinks
}

// AllGroupsKey returns the key for the set of all group names
func AllGroupsKey() string {
	return KeyAllGroups
}
