package geo

import (
	"container/list"
	"strconv"
	"sync"
	"time"
)

// 文档注释：包含判定结果的本地 LRU 缓存
// 背景：表单反复提交同一坐标时跳过射线判定；键为精确坐标对，不做量化，避免边界附近误判。
// 约束：缓存的是某一固定区域的结果；区域替换时需新建 Containment。
type Containment struct {
	region Region

	mu   sync.Mutex
	cap  int
	ttl  time.Duration
	lst  *list.List
	dict map[string]*list.Element
}

type entry struct {
	k   string
	v   bool
	exp time.Time
}

func NewContainment(r Region, capacity int, ttl time.Duration) *Containment {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Containment{region: r, cap: capacity, ttl: ttl, lst: list.New(), dict: make(map[string]*list.Element)}
}

func (c *Containment) Contains(pt Point) bool {
	k := strconv.FormatFloat(pt.Lat, 'g', -1, 64) + ":" + strconv.FormatFloat(pt.Lon, 'g', -1, 64)
	if v, ok := c.get(k); ok {
		return v
	}
	v := c.region.Contains(pt)
	c.set(k, v)
	return v
}

// Len：当前缓存条目数
func (c *Containment) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lst.Len()
}

func (c *Containment) get(k string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.dict[k]
	if !ok {
		return false, false
	}
	it := e.Value.(entry)
	if c.ttl > 0 && time.Now().After(it.exp) {
		c.lst.Remove(e)
		delete(c.dict, k)
		return false, false
	}
	c.lst.MoveToFront(e)
	return it.v, true
}

func (c *Containment) set(k string, v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it := entry{k: k, v: v, exp: time.Now().Add(c.ttl)}
	if e, ok := c.dict[k]; ok {
		e.Value = it
		c.lst.MoveToFront(e)
		return
	}
	c.dict[k] = c.lst.PushFront(it)
	for c.lst.Len() > c.cap {
		back := c.lst.Back()
		delete(c.dict, back.Value.(entry).k)
		c.lst.Remove(back)
	}
}
