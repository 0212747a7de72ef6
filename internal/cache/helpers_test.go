package cache

// peek returns the cached value of key if it is fresh, without fetching.
func (c *QueryCache) peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.freshLocked(key)
}

// generation returns how many times tag has been invalidated.
func (c *QueryCache) generation(tag Tag) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generations[tag]
}
