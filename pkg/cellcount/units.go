package cellcount

// ChamberVolumeFactor converts an average count per hemocytometer square to cells per mL.
// One large square covers 1 mm x 1 mm at 0.1 mm depth, i.e. 0.1 uL = 1e-4 mL.
const ChamberVolumeFactor = 10000

// mediaRoundOff is the relative tolerance under which a negative media volume
// is treated as floating point noise rather than a broken invariant.
const mediaRoundOff = 1e-9
