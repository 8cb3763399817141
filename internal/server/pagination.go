package server

// Pagination describes the page window rendered under the table: the current
// page plus two on each side, with first/last links and ellipsis gaps when
// the window does not reach the edges.
type Pagination struct {
	Page        int
	TotalPages  int
	Offset      int
	End         int
	Pages       []int
	ShowFirst   bool
	LeadingGap  bool
	ShowLast    bool
	TrailingGap bool
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

func paginate(total, page, perPage int) Pagination {
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * perPage
	end := offset + perPage
	if end > total {
		end = total
	}
	if offset > total {
		offset = total
	}

	start := page - 2
	if start < 1 {
		start = 1
	}
	stop := page + 2
	if stop > totalPages {
		stop = totalPages
	}
	pages := make([]int, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		pages = append(pages, i)
	}

	return Pagination{
		Page:        page,
		TotalPages:  totalPages,
		Offset:      offset,
		End:         end,
		Pages:       pages,
		ShowFirst:   start > 1,
		LeadingGap:  start > 2,
		ShowLast:    stop < totalPages,
		TrailingGap: stop < totalPages-1,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
	}
}
