package plog

import "slices"

// Interceptor inspects or rewrites a LogItem before it is printed. Returning
// false drops the item: the rest of the chain is skipped and nothing is
// printed.
//
// Interceptors run on the emitting goroutine for every entry that passed the
// level gate, so they have to be cheap. They must never return an item with
// an empty tag, nor an empty message for an item that had one; doing so
// panics with *InterceptorError.
type Interceptor interface {
	Intercept(item LogItem) (LogItem, bool)
}

// InterceptorFunc adapts a plain function to Interceptor.
type InterceptorFunc func(item LogItem) (LogItem, bool)

func (f InterceptorFunc) Intercept(item LogItem) (LogItem, bool) {
	return f(item)
}

// intercept folds the item through the chain in order.
func intercept(chain []Interceptor, item LogItem) (LogItem, bool) {
	for i, ic := range chain {
		if ic == nil {
			continue
		}
		next, ok := ic.Intercept(item)
		if !ok {
			return item, false
		}
		if next.Tag == "" || (next.Msg == "" && item.Msg != "") {
			panic(&InterceptorError{Index: i, Item: next})
		}
		item = next
	}
	return item, true
}

// BlacklistTags drops every item whose tag is one of tags.
func BlacklistTags(tags ...string) Interceptor {
	return InterceptorFunc(func(item LogItem) (LogItem, bool) {
		return item, !slices.Contains(tags, item.Tag)
	})
}

// WhitelistTags drops every item whose tag is not one of tags.
func WhitelistTags(tags ...string) Interceptor {
	return InterceptorFunc(func(item LogItem) (LogItem, bool) {
		return item, slices.Contains(tags, item.Tag)
	})
}
