package packed

/*

# Packed merkle trees

A packed tree is a binary merkle tree stored as a flat slice of node keys. The
layout is implicit, in the same spirit as the heap layout of a priority queue:

	node i has children 2i+1 (left) and 2i+2 (right), and parent (i-1)/2

A tree with k leaves always has exactly 2k-1 nodes, and the leaves always
occupy the trailing k positions. For k = 5:

	               0
	           /       \
	         1           2
	       /   \       /   \
	      3     4     5     6
	     / \   / \
	    7   8 9   10

	    internal: 0 1 2 3
	    leaves:   4 5 6 7 8 9 10

Because there are no gaps it is always possible to add a leaf by pairing the
first leaf (4 above) with the new one: the first leaf moves to the end of the
slice, the new leaf follows it, and slot 4 becomes their parent. Only the
ancestors of slot 4 need re-hashing. Deletion runs the same trick backwards,
taking the last two leaves off the end and using them to patch the hole.

# Hashing

	leaf(d)    = H(H(d))
	node(a, b) = H(H(a || b))

Interior nodes commit to their children *right first*:

	tree[i] = node(tree[2i+2], tree[2i+1])

Every place that derives a parent (build, push, delete, proof folding) uses
this order. Proof steps carry a Side which says where the sibling goes in the
concatenation, so folding a path never needs to know the index.

# Replicas

A replica can be reserved knowing only the root and the leaf count. Every slot
except the root is then unset. DataBundles (a leaf payload plus its path) are
verified against the local root and, once verified, fill in the leaf, its
siblings and its ancestors. A slot which is already set must agree with the
bundle. A disagreement means two peers hold different content under the same
root, which is reported as ErrSlotConflict rather than being overwritten.
*/
