package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/database"
)

// Cache holds recently read department and sub-department lists. Mutating
// handlers must call Invalidate so stale lists never outlive a write by more
// than the request that performed it.
type Cache interface {
	GetDepartments() ([]database.Department, bool)
	SetDepartments(depts []database.Department)
	GetSubDepartments(departmentID int) ([]database.SubDepartment, bool)
	SetSubDepartments(departmentID int, subDepts []database.SubDepartment)
	Invalidate()
	Stats() Stats
}

type Stats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

const departmentsKey = "departments"

type lookupCache struct {
	cache *cache.Cache
	mu    sync.Mutex
	stats Stats
}

// New creates a lookup cache whose entries expire after ttl
func New(ttl time.Duration) Cache {
	return &lookupCache{
		cache: cache.New(ttl, ttl*2),
	}
}

func (c *lookupCache) GetDepartments() ([]database.Department, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(departmentsKey); found {
		if depts, ok := data.([]database.Department); ok {
			c.stats.Hits++
			return depts, true
		}
	}

	c.stats.Misses++
	return nil, false
}

func (c *lookupCache) SetDepartments(depts []database.Department) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Set(departmentsKey, depts, cache.DefaultExpiration)
}

func (c *lookupCache) GetSubDepartments(departmentID int) ([]database.SubDepartment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(subDepartmentsKey(departmentID)); found {
		if subDepts, ok := data.([]database.SubDepartment); ok {
			c.stats.Hits++
			return subDepts, true
		}
	}

	c.stats.Misses++
	return nil, false
}

func (c *lookupCache) SetSubDepartments(departmentID int, subDepts []database.SubDepartment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Set(subDepartmentsKey(departmentID), subDepts, cache.DefaultExpiration)
}

// Invalidate drops every cached list
func (c *lookupCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
}

func (c *lookupCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Size = c.cache.ItemCount()
	return c.stats
}

func subDepartmentsKey(departmentID int) string {
	return fmt.Sprintf("sub-departments:%d", departmentID)
}
