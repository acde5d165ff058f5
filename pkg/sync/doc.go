// Package sync implements the filesystem synchronization engine.
//
// It covers two flows that share one conflict policy and one plan/apply
// split:
//
//   - Dotfile linking: mirror a source tree into a destination root via
//     symlinks (LinkTree, LinkTopLevel).
//   - Skill bundles: import provider-owned bundle directories into the
//     canonical store (ImportBundles), then expose the store back to the
//     provider by materializing real files, linking per bundle, or
//     linking the provider skills directory wholesale (SyncProvider).
//
// Every mutating primitive is gated on Options.Apply. A planned run
// records exactly the actions an applied run would execute against the
// same filesystem state; callers read them from Report. Execution is
// single-threaded and depth-first, and directory entries are always
// processed in lexicographic order, so two runs over identical state
// produce identical action sequences.
//
// Fatal errors (missing roots, ambiguous bundle ownership, the fail
// conflict policy, filesystem errors) abort the whole run and leave
// already-applied mutations in place. The only locally recovered
// failure is the materializer's hardlink attempt, which falls back to
// copying.
package sync
