package reconcile

import "github.com/lexkit/lexsync/resource"

// changeSet partitions a desired child list against the previous one. The
// three sets are disjoint by the identifying attribute: an item is created
// when only the desired list has its name, deleted when only the previous
// list has it, and updated when both have it but the content differs.
type changeSet struct {
	toCreate []resource.Props
	toUpdate []resource.Props
	toDelete []resource.Props
}

func (c changeSet) empty() bool {
	return len(c.toCreate) == 0 && len(c.toUpdate) == 0 && len(c.toDelete) == 0
}

// diffByName computes the create/update/delete partition of newItems versus
// oldItems, identified by the nameKey attribute. Order within each set
// follows the source list order.
func diffByName(newItems []resource.Props, oldItems []resource.Props, nameKey string) changeSet {
	oldByName := make(map[string]resource.Props, len(oldItems))
	for _, item := range oldItems {
		oldByName[resource.String(item, nameKey)] = item
	}
	newNames := make(map[string]struct{}, len(newItems))
	for _, item := range newItems {
		newNames[resource.String(item, nameKey)] = struct{}{}
	}

	var set changeSet
	for _, item := range newItems {
		name := resource.String(item, nameKey)
		old, existed := oldByName[name]
		switch {
		case !existed:
			set.toCreate = append(set.toCreate, item)
		case !resource.Equal(item, old):
			set.toUpdate = append(set.toUpdate, item)
		}
	}
	for _, item := range oldItems {
		if _, kept := newNames[resource.String(item, nameKey)]; !kept {
			set.toDelete = append(set.toDelete, item)
		}
	}
	return set
}
