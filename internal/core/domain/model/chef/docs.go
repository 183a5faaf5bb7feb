// Package chef provides the Chef aggregate: a member of kitchen staff whose
// load (currentOrderCount) is the shared counter the allocator balances.
//
// Key business rules:
//   - At most MaxActiveChefs chefs are active at the same time
//   - Only active chefs receive new orders
//   - The load never drops below 0
//   - A chef can only be removed while idle (load 0)
package chef
